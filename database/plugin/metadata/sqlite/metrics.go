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

package sqlite

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// storeMetrics tracks counts of records staged through the store. The
// promauto factory skips registration when the registry is nil, so the
// counters are always safe to increment.
type storeMetrics struct {
	placesCreated         prometheus.Counter
	membersCreated        prometheus.Counter
	committeeTypesCreated prometheus.Counter
	committeesCreated     prometheus.Counter
}

func newStoreMetrics(promRegistry prometheus.Registerer) *storeMetrics {
	promautoFactory := promauto.With(promRegistry)
	m := &storeMetrics{
		placesCreated: promautoFactory.NewCounter(
			prometheus.CounterOpts{
				Name: "cleansweep_registry_places_created_total",
				Help: "total number of places staged for creation",
			},
		),
		membersCreated: promautoFactory.NewCounter(
			prometheus.CounterOpts{
				Name: "cleansweep_registry_members_created_total",
				Help: "total number of members staged for creation",
			},
		),
		committeeTypesCreated: promautoFactory.NewCounter(
			prometheus.CounterOpts{
				Name: "cleansweep_registry_committee_types_created_total",
				Help: "total number of committee types staged for creation",
			},
		),
		committeesCreated: promautoFactory.NewCounter(
			prometheus.CounterOpts{
				Name: "cleansweep_registry_committees_created_total",
				Help: "total number of committees staged for creation",
			},
		),
	}
	return m
}
