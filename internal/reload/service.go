// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package reload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinematch/internal/events"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Outcome labels for dataset_reloads_total.
const (
	OutcomeRebuilt   = "rebuilt"
	OutcomeUnchanged = "unchanged"
	OutcomeFailed    = "failed"
	OutcomeRejected  = "rejected"
	OutcomeCanceled  = "canceled"
)

// ErrBreakerOpen is returned while repeated failures keep the breaker open.
var ErrBreakerOpen = errors.New("reload circuit breaker open")

// Loader rebuilds the model from a CSV path. *recommend.Engine satisfies it.
type Loader interface {
	LoadFile(ctx context.Context, path string) (*recommend.Model, bool, error)
}

// Publisher is the subset of *events.Bus the service needs.
type Publisher interface {
	Publish(topic string, payload any) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
}

// Config configures a Service.
type Config struct {
	Path             string
	MinInterval      time.Duration
	FailureThreshold uint32
	BreakerTimeout   time.Duration
}

// Result describes one reload attempt.
type Result struct {
	Outcome string
	Model   *recommend.Model
	Err     error
}

type buildResult struct {
	model   *recommend.Model
	changed bool
}

// Service is a suture service that serializes reloads.
type Service struct {
	cfg     Config
	loader  Loader
	bus     Publisher
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[buildResult]
	logger  zerolog.Logger
}

// New validates cfg and creates a Service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg Config, loader Loader, bus Publisher, logger zerolog.Logger) (*Service, error) {
	if cfg.Path == "" {
		return nil, errors.New("reload: dataset path is required")
	}
	if loader == nil {
		return nil, errors.New("reload: loader is required")
	}
	if bus == nil {
		return nil, errors.New("reload: event bus is required")
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}

	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}

	s := &Service{
		cfg:     cfg,
		loader:  loader,
		bus:     bus,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger.With().Str("component", "reload").Logger(),
	}
	s.breaker = gobreaker.NewCircuitBreaker[buildResult](gobreaker.Settings{
		Name:        "dataset-reload",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("reload circuit breaker state changed")
		},
	})
	return s, nil
}

// Serve consumes dataset-change signals until ctx is done.
func (s *Service) Serve(ctx context.Context) error {
	msgs, err := s.bus.Subscribe(ctx, events.TopicDatasetChanged)
	if err != nil {
		return fmt.Errorf("reload subscribe: %w", err)
	}
	s.logger.Info().Str("path", s.cfg.Path).Msg("reload service started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return ctx.Err()
			}
			ev, err := events.Decode[events.DatasetChanged](msg)
			if err != nil {
				s.logger.Warn().Err(err).Msg("dropping undecodable dataset change")
				msg.Ack()
				continue
			}
			msg.Ack()
			s.Handle(ctx, ev)
		}
	}
}

// Trigger publishes a dataset-change signal and returns its event id. The
// rebuild happens asynchronously in Serve.
func (s *Service) Trigger(source string) (string, error) {
	ev := events.NewDatasetChanged(source, s.cfg.Path)
	if err := s.bus.Publish(events.TopicDatasetChanged, ev); err != nil {
		return "", err
	}
	return ev.EventID, nil
}

// Handle performs one throttled, breaker-guarded reload for ev and
// publishes the outcome.
func (s *Service) Handle(ctx context.Context, ev events.DatasetChanged) Result {
	log := s.logger.With().Str("trigger_id", ev.EventID).Str("source", ev.Source).Logger()

	if err := s.limiter.Wait(ctx); err != nil {
		metrics.RecordReload(ev.Source, OutcomeCanceled)
		return Result{Outcome: OutcomeCanceled, Err: err}
	}

	start := time.Now()
	res, err := s.breaker.Execute(func() (buildResult, error) {
		m, changed, err := s.loader.LoadFile(ctx, s.cfg.Path)
		return buildResult{model: m, changed: changed}, err
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordReload(ev.Source, OutcomeRejected)
		log.Warn().Str("state", s.breaker.State().String()).Msg("reload rejected by circuit breaker")
		err = fmt.Errorf("%w: %w", ErrBreakerOpen, err)
		s.publishFailure(ev, err)
		return Result{Outcome: OutcomeRejected, Err: err}

	case err != nil:
		metrics.RecordReload(ev.Source, OutcomeFailed)
		log.Error().Err(err).Str("path", s.cfg.Path).Msg("dataset reload failed, keeping previous model")
		s.publishFailure(ev, err)
		return Result{Outcome: OutcomeFailed, Err: err}

	case !res.changed:
		metrics.RecordReload(ev.Source, OutcomeUnchanged)
		log.Info().Msg("dataset unchanged")
		return Result{Outcome: OutcomeUnchanged, Model: res.model}
	}

	metrics.RecordReload(ev.Source, OutcomeRebuilt)
	st := res.model.Status()
	log.Info().
		Int64("version", st.Version).
		Int("rows", st.Rows).
		Dur("elapsed", time.Since(start)).
		Msg("dataset reloaded")

	if perr := s.bus.Publish(events.TopicModelRebuilt, events.ModelRebuilt{
		EventID:     uuid.New().String(),
		TriggerID:   ev.EventID,
		Source:      ev.Source,
		Version:     st.Version,
		DatasetHash: st.DatasetHash,
		Rows:        st.Rows,
		Vocabulary:  st.VocabularySize,
		BuildMS:     st.BuildMS,
		BuiltAt:     st.BuiltAt,
	}); perr != nil {
		log.Warn().Err(perr).Msg("failed to publish model rebuilt event")
	}
	return Result{Outcome: OutcomeRebuilt, Model: res.model}
}

// BreakerState reports the circuit breaker state (closed, open, half-open).
func (s *Service) BreakerState() string {
	return s.breaker.State().String()
}

// String implements fmt.Stringer for suture logging.
func (s *Service) String() string {
	return "reload-service"
}

func (s *Service) publishFailure(ev events.DatasetChanged, cause error) {
	if err := s.bus.Publish(events.TopicReloadFailed, events.ReloadFailed{
		EventID:   uuid.New().String(),
		TriggerID: ev.EventID,
		Source:    ev.Source,
		Path:      s.cfg.Path,
		Error:     cause.Error(),
		FailedAt:  time.Now().UTC(),
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish reload failed event")
	}
}
