// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/events"
)

// Trigger publishes a dataset-change signal. *reload.Service satisfies it.
type Trigger interface {
	Trigger(source string) (string, error)
}

// PollService signals a dataset reload every Interval.
type PollService struct {
	trigger  Trigger
	interval time.Duration
	logger   zerolog.Logger
}

// NewPollService creates a poller. interval must be positive.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPollService(trigger Trigger, interval time.Duration, logger zerolog.Logger) (*PollService, error) {
	if trigger == nil {
		return nil, errors.New("poll service: trigger is required")
	}
	if interval <= 0 {
		return nil, errors.New("poll service: interval must be positive")
	}
	return &PollService{
		trigger:  trigger,
		interval: interval,
		logger:   logger.With().Str("service", "dataset-poller").Logger(),
	}, nil
}

// Serve ticks until ctx is done. A failed publish is logged and the next
// tick tries again.
func (p *PollService) Serve(ctx context.Context) error {
	p.logger.Info().Dur("interval", p.interval).Msg("dataset poller started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("dataset poller stopped")
			return ctx.Err()
		case <-ticker.C:
			id, err := p.trigger.Trigger(events.SourcePoll)
			if err != nil {
				p.logger.Warn().Err(err).Msg("dataset poll signal failed")
				continue
			}
			p.logger.Debug().Str("trigger_id", id).Msg("dataset poll signal sent")
		}
	}
}

func (p *PollService) String() string {
	return "dataset-poller"
}
