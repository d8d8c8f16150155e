// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package events

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Topic names.
const (
	TopicDatasetChanged = "dataset.changed"
	TopicModelRebuilt   = "model.rebuilt"
	TopicReloadFailed   = "reload.failed"
)

// Signal sources.
const (
	SourceAPI     = "api"
	SourceWatcher = "watcher"
	SourceStartup = "startup"
	SourceCLI     = "cli"
	SourcePoll    = "poll"
)

// DatasetChanged asks the reload service to re-read the dataset.
type DatasetChanged struct {
	EventID     string    `json:"event_id"`
	Source      string    `json:"source"`
	Path        string    `json:"path,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// ModelRebuilt reports a model swap.
type ModelRebuilt struct {
	EventID     string    `json:"event_id"`
	TriggerID   string    `json:"trigger_id,omitempty"`
	Source      string    `json:"source"`
	Version     int64     `json:"version"`
	DatasetHash string    `json:"dataset_hash"`
	Rows        int       `json:"rows"`
	Vocabulary  int       `json:"vocabulary_size"`
	BuildMS     int64     `json:"build_ms"`
	BuiltAt     time.Time `json:"built_at"`
}

// ReloadFailed reports a reload that left the previous model in place.
type ReloadFailed struct {
	EventID   string    `json:"event_id"`
	TriggerID string    `json:"trigger_id,omitempty"`
	Source    string    `json:"source"`
	Path      string    `json:"path,omitempty"`
	Error     string    `json:"error"`
	FailedAt  time.Time `json:"failed_at"`
}

// NewDatasetChanged returns a signal stamped with a fresh id and time.
func NewDatasetChanged(source, path string) DatasetChanged {
	return DatasetChanged{
		EventID:     uuid.New().String(),
		Source:      source,
		Path:        path,
		RequestedAt: time.Now().UTC(),
	}
}

// NewMessage encodes payload as a Watermill message. The message UUID
// is the payload's event id when it has one.
func NewMessage(id string, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	if id == "" {
		id = uuid.New().String()
	}
	msg := message.NewMessage(id, data)
	msg.Metadata.Set("content_type", "application/json")
	return msg, nil
}

// Decode unmarshals a message payload into T.
func Decode[T any](msg *message.Message) (T, error) {
	var v T
	if err := json.Unmarshal(msg.Payload, &v); err != nil {
		return v, fmt.Errorf("decode event %s: %w", msg.UUID, err)
	}
	return v, nil
}
