// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/rankpulse/internal/logging"
)

// DefaultCheckpointInterval is used when NewCheckpointService gets zero.
const DefaultCheckpointInterval = 5 * time.Minute

// maxCheckpointFailures is the number of consecutive failed checkpoints
// after which Serve returns and lets the supervisor back off.
const maxCheckpointFailures = 3

// Checkpointer flushes pending writes to durable storage.
// Satisfied by *database.DB.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// CheckpointService checkpoints the embedded database on an interval and
// once more on shutdown.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
	name     string
}

// NewCheckpointService creates the service.
func NewCheckpointService(db Checkpointer, interval time.Duration) *CheckpointService {
	if interval <= 0 {
		interval = DefaultCheckpointInterval
	}
	return &CheckpointService{
		db:       db,
		interval: interval,
		name:     "duckdb-checkpoint",
	}
}

// Serve implements suture.Service.
func (s *CheckpointService) Serve(ctx context.Context) error {
	logger := logging.WithComponent(s.name)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := s.db.Checkpoint(flushCtx); err != nil {
				logger.Warn().Err(err).Msg("Final checkpoint failed")
			}
			cancel()
			return ctx.Err()

		case <-ticker.C:
			if err := s.db.Checkpoint(ctx); err != nil {
				failures++
				logger.Warn().Err(err).Int("consecutive_failures", failures).Msg("Checkpoint failed")
				if failures >= maxCheckpointFailures {
					return fmt.Errorf("checkpoint failed %d times in a row: %w", failures, err)
				}
				continue
			}
			failures = 0
			logger.Debug().Msg("Checkpoint complete")
		}
	}
}

// String implements fmt.Stringer for suture's log messages.
func (s *CheckpointService) String() string {
	return s.name
}
