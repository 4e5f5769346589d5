// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cleansweep

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/blinklabs-io/cleansweep/database"
)

// Registry is the top-level handle for the hierarchical place registry.
// It owns the database and any configured observability hooks.
type Registry struct {
	db            *database.Database
	shutdownFuncs []func(context.Context) error
	config        Config
	shutdownOnce  sync.Once
}

func New(cfg Config) (*Registry, error) {
	r := &Registry{
		config: cfg,
	}
	return r, nil
}

// Start opens the database and configures tracing when enabled
func (r *Registry) Start() error {
	// Configure tracing
	if r.config.tracing {
		if err := r.setupTracing(); err != nil {
			return err
		}
	}
	// Metrics listener
	if r.config.metricsPort > 0 {
		r.startMetricsListener()
	}
	// Load database
	db, err := database.New(&database.Config{
		DataDir:        r.config.dataDir,
		Logger:         r.config.logger,
		PromRegistry:   r.config.promRegistry,
		MetadataPlugin: r.config.metadataPlugin,
	})
	if db == nil {
		r.config.logger.Error(
			"failed to create database",
			"error",
			"empty database returned",
		)
		return errors.New("empty database returned")
	}
	r.db = db
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	return nil
}

// Stop shuts down the registry and releases all resources
func (r *Registry) Stop() error {
	var err error
	r.shutdownOnce.Do(func() {
		ctx := context.Background()
		for _, fn := range r.shutdownFuncs {
			err = errors.Join(err, fn(ctx))
		}
		if r.db != nil {
			err = errors.Join(err, r.db.Close())
		}
	})
	return err
}

// DB returns the registry database
func (r *Registry) DB() *database.Database {
	return r.db
}
