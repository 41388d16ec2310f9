// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultMongoImage is the MongoDB image used by integration tests.
	DefaultMongoImage = "mongo:7.0"

	// DefaultMongoPort is the MongoDB wire protocol port.
	DefaultMongoPort = "27017"
)

// MongoContainer is a running standalone MongoDB server.
type MongoContainer struct {
	testcontainers.Container
	URI string
}

// MongoOption configures the MongoDB container.
type MongoOption func(*mongoConfig)

type mongoConfig struct {
	image        string
	startTimeout time.Duration
}

// WithMongoImage sets a custom MongoDB image.
func WithMongoImage(image string) MongoOption {
	return func(c *mongoConfig) {
		c.image = image
	}
}

// WithMongoStartTimeout sets how long to wait for the server to accept connections.
func WithMongoStartTimeout(timeout time.Duration) MongoOption {
	return func(c *mongoConfig) {
		c.startTimeout = timeout
	}
}

// NewMongoContainer creates and starts a MongoDB container.
func NewMongoContainer(ctx context.Context, opts ...MongoOption) (*MongoContainer, error) {
	cfg := &mongoConfig{
		image:        DefaultMongoImage,
		startTimeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{DefaultMongoPort + "/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Waiting for connections"),
			wait.ForListeningPort(DefaultMongoPort+"/tcp"),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create mongo container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, DefaultMongoPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &MongoContainer{
		Container: container,
		URI:       fmt.Sprintf("mongodb://%s:%s", host, port.Port()),
	}, nil
}
