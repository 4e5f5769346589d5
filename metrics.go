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
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (r *Registry) startMetricsListener() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	r.config.logger.Info(
		fmt.Sprintf(
			"serving prometheus metrics on :%d",
			r.config.metricsPort,
		),
		"component", "registry",
	)
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", r.config.metricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 60 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		err := metricsServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.config.logger.Error(
				"failed to start metrics listener",
				"component", "registry",
				"error", err,
			)
		}
	}()
	r.shutdownFuncs = append(r.shutdownFuncs, metricsServer.Shutdown)
}
