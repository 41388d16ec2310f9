// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
)

// Task is one run of a periodic job.
type Task func(ctx context.Context) error

// PeriodicService runs a task every interval until its context ends.
// Task errors are logged and the schedule continues; a panic is left to
// suture, which restarts the service.
type PeriodicService struct {
	name     string
	interval time.Duration
	task     Task
}

// NewPeriodicService creates a periodic service. A non-positive interval
// means one minute.
func NewPeriodicService(name string, interval time.Duration, task Task) *PeriodicService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &PeriodicService{name: name, interval: interval, task: task}
}

// Serve implements suture.Service.
func (p *PeriodicService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	logger := logging.WithComponent(p.name)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := p.task(ctx); err != nil {
				logger.Warn().Err(err).Msg("Periodic task failed")
				continue
			}
			logger.Debug().Dur("duration", time.Since(start)).Msg("Periodic task completed")
		}
	}
}

func (p *PeriodicService) String() string {
	return p.name
}
