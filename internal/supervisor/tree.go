// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// TreeConfig holds supervisor tree configuration.
type TreeConfig struct {
	// FailureThreshold is the number of failures before entering backoff.
	// Default: 5
	FailureThreshold float64

	// FailureDecay is the rate at which failures decay in seconds.
	// Default: 30
	FailureDecay float64

	// FailureBackoff is the duration to wait when threshold is exceeded.
	// Default: 15s
	FailureBackoff time.Duration

	// ShutdownTimeout is the maximum time each service gets to stop.
	// Default: 10s
	ShutdownTimeout time.Duration
}

// DefaultTreeConfig returns suture's documented defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

func (c TreeConfig) withDefaults() TreeConfig {
	def := DefaultTreeConfig()
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = def.FailureThreshold
	}
	if c.FailureDecay <= 0 {
		c.FailureDecay = def.FailureDecay
	}
	if c.FailureBackoff <= 0 {
		c.FailureBackoff = def.FailureBackoff
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = def.ShutdownTimeout
	}
	return c
}

// SupervisorTree is the process supervisor.
type SupervisorTree struct {
	root   *suture.Supervisor
	store  *suture.Supervisor
	api    *suture.Supervisor
	config TreeConfig
}

// NewSupervisorTree builds the tree. Zero config fields take defaults.
func NewSupervisorTree(logger *slog.Logger, config TreeConfig) (*SupervisorTree, error) {
	if logger == nil {
		return nil, errors.New("supervisor: logger is required")
	}
	config = config.withDefaults()

	// MustHook has a pointer receiver.
	hook := (&sutureslog.Handler{Logger: logger}).MustHook()

	spec := func(withHook bool) suture.Spec {
		s := suture.Spec{
			FailureThreshold: config.FailureThreshold,
			FailureDecay:     config.FailureDecay,
			FailureBackoff:   config.FailureBackoff,
			Timeout:          config.ShutdownTimeout,
		}
		if withHook {
			s.EventHook = hook
		}
		return s
	}

	// Children inherit the root's event hook when added.
	root := suture.New("marquee", spec(true))
	storeLayer := suture.New("store-layer", spec(false))
	apiLayer := suture.New("api-layer", spec(false))
	root.Add(storeLayer)
	root.Add(apiLayer)

	return &SupervisorTree{
		root:   root,
		store:  storeLayer,
		api:    apiLayer,
		config: config,
	}, nil
}

// AddStoreService adds a store maintenance service.
func (t *SupervisorTree) AddStoreService(svc suture.Service) suture.ServiceToken {
	return t.store.Add(svc)
}

// AddAPIService adds a service to the API layer.
func (t *SupervisorTree) AddAPIService(svc suture.Service) suture.ServiceToken {
	return t.api.Add(svc)
}

// Serve runs the tree until ctx is canceled.
func (t *SupervisorTree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// ServeBackground runs the tree in a goroutine. The channel receives the
// result when the tree stops.
func (t *SupervisorTree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services that outlived the shutdown timeout.
func (t *SupervisorTree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}
