// Copyright 2016 Google Inc. All Rights Reserved.
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

// Package metrics backs Database.StartProfiling with a Prometheus
// histogram, one observation per completed operation, labeled by
// operation name.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/google/merkledb"
)

var operationDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "merkledb",
		Subsystem: "storage",
		Name:      "operation_duration_seconds",
		Help:      "Time spent in Database operations, by operation name.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

func init() {
	prometheus.MustRegister(operationDuration)
}

// guard is a ProfilingGuard backed by a Prometheus histogram observation.
// End must be called exactly once; calling it more than once double-counts
// the observation, and never calling it leaks the span silently (Go has no
// destructor to catch the mistake at runtime).
type guard struct {
	observer prometheus.Observer
	start    time.Time
}

// End implements merkledb.ProfilingGuard.
func (g *guard) End() {
	g.observer.Observe(time.Since(g.start).Seconds())
}

// StartProfiling returns a ProfilingGuard that records the wall-clock
// duration between this call and the guard's End() in the
// merkledb_storage_operation_duration_seconds histogram, labeled by op.
func StartProfiling(op merkledb.ProfiledTreeOperation) merkledb.ProfilingGuard {
	return &guard{
		observer: operationDuration.WithLabelValues(string(op)),
		start:    time.Now(),
	}
}
