/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package zygote

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics is a small observability surface layered on top of the core
// design: counters/histograms a host can scrape to notice a zygote
// behaving badly, without the library itself acting on what it sees (no
// auto-restart - that non-goal still holds). Grounded on nabbar-golib's
// `prometheus/metrics` NewMetrics(name, type) shape, narrowed to the
// handful of series a zygote call site plausibly wants.
type metricsSet struct {
	callsTotal   *prometheus.CounterVec
	panicsTotal  prometheus.Counter
	activeTotal  prometheus.Gauge
	callDuration prometheus.Histogram
}

var defaultMetrics = newMetricsSet()

func newMetricsSet() *metricsSet {
	return &metricsSet{
		callsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zygote",
			Name:      "calls_total",
			Help:      "Number of TryRun/TryRunE calls, by outcome.",
		}, []string{"outcome"}),
		panicsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zygote",
			Name:      "panics_total",
			Help:      "Number of calls that came back with a task failure (panic, returned error or argument decode failure).",
		}),
		activeTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "zygote",
			Name:      "active_total",
			Help:      "Number of zygote handles currently open.",
		}),
		callDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "zygote",
			Name:      "call_duration_seconds",
			Help:      "Latency of a TryRun/TryRunE round trip.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Register registers the package's default metrics with reg. Safe to skip;
// metrics are purely observational and nothing in this package depends on
// a registry being present.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		defaultMetrics.callsTotal,
		defaultMetrics.panicsTotal,
		defaultMetrics.activeTotal,
		defaultMetrics.callDuration,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// recordCall updates the default metrics for one TryRun/TryRunE call. id is
// accepted (and otherwise unused here) to keep the call site symmetrical
// with the structured-logging call, which does use it as a correlation id.
func recordCall(id string, start time.Time, outcome string) {
	defaultMetrics.callsTotal.WithLabelValues(outcome).Inc()
	defaultMetrics.callDuration.Observe(time.Since(start).Seconds())
	if outcome == "panic" {
		defaultMetrics.panicsTotal.Inc()
	}
}
