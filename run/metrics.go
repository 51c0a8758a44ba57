// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package run

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts evaluations and records what they cost.
type Metrics struct {
	Evaluations *prometheus.CounterVec
	Steps       prometheus.Histogram
	Duration    prometheus.Histogram
	CPU         prometheus.Histogram
}

// Results label the Evaluations counter.
const (
	ResultOK       = "ok"
	ResultError    = "error"
	ResultExceeded = "exceeded"
)

// NewMetrics creates the evaluation metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ul4",
			Subsystem: "evaluation",
			Name:      "total",
			Help:      "Total number of template evaluations by result",
		}, []string{"result"}),
		Steps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ul4",
			Subsystem: "evaluation",
			Name:      "steps",
			Help:      "Nodes visited per evaluation",
			Buckets:   prometheus.ExponentialBuckets(10, 10, 7),
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ul4",
			Subsystem: "evaluation",
			Name:      "duration_seconds",
			Help:      "Wall clock time per evaluation in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		CPU: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ul4",
			Subsystem: "evaluation",
			Name:      "cpu_seconds",
			Help:      "User CPU time per evaluation in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	for _, c := range []prometheus.Collector{m.Evaluations, m.Steps, m.Duration, m.CPU} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "registering evaluation metrics")
		}
	}
	return m, nil
}

func (m *Metrics) observe(s *stats) {
	if m == nil {
		return
	}
	m.Evaluations.WithLabelValues(s.result).Inc()
	m.Steps.Observe(float64(s.steps))
	m.Duration.Observe(s.elapsed.Seconds())
	m.CPU.Observe(s.cpu.Seconds())
}
