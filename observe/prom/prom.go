// Package prom exports channel events as Prometheus metrics.
package prom

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/NetPo4ki/go-mpmc/channel"
)

const namespace = "mpmc"

// Outcome label values.
const (
	OutcomeOK      = "ok"
	OutcomeTimeout = "timeout"
	OutcomeClosed  = "closed"
)

// Metrics implements channel.Observer on top of Prometheus collectors.
// Every series carries a constant "channel" label with the name given to New.
//
// Hooks run outside the channel lock, so concurrent operations may report
// their depth out of order; the depth gauge is best-effort while the channel
// is busy and exact once it is quiescent.
type Metrics struct {
	ops    *prometheus.CounterVec
	wait   *prometheus.HistogramVec
	depth  prometheus.Gauge
	closed prometheus.Gauge

	// mirrors for GetSnapshot
	sent     atomic.Int64
	received atomic.Int64
	timeouts atomic.Int64
	refused  atomic.Int64
	curDepth atomic.Int64
	isClosed atomic.Bool
}

// New builds the collectors for one channel and registers them with reg.
// A nil reg skips registration.
func New(name string, reg prometheus.Registerer) (*Metrics, error) {
	labels := prometheus.Labels{"channel": name}
	m := &Metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "channel",
			Name:        "operations_total",
			Help:        "Channel operations by side and outcome.",
			ConstLabels: labels,
		}, []string{"op", "outcome"}),
		wait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "channel",
			Name:        "wait_seconds",
			Help:        "Time spent in send or receive, including time parked on a full or empty buffer.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"op"}),
		depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "channel",
			Name:        "depth",
			Help:        "Buffered elements after a recent operation; best-effort under concurrent use.",
			ConstLabels: labels,
		}),
		closed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "channel",
			Name:        "closed",
			Help:        "1 once the channel has been closed.",
			ConstLabels: labels,
		}),
	}
	if reg == nil {
		return m, nil
	}
	var errs []error
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

// Collectors lists the collectors backing m.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.ops, m.wait, m.depth, m.closed}
}

// Completed counts a successful send or receive and records its wait.
func (m *Metrics) Completed(op channel.Op, depth int, wait time.Duration) {
	m.ops.WithLabelValues(op.String(), OutcomeOK).Inc()
	m.wait.WithLabelValues(op.String()).Observe(wait.Seconds())
	m.depth.Set(float64(depth))
	m.curDepth.Store(int64(depth))
	if op == channel.OpSend {
		m.sent.Add(1)
	} else {
		m.received.Add(1)
	}
}

// Expired counts a bounded wait that ran out.
func (m *Metrics) Expired(op channel.Op, wait time.Duration) {
	m.ops.WithLabelValues(op.String(), OutcomeTimeout).Inc()
	m.wait.WithLabelValues(op.String()).Observe(wait.Seconds())
	m.timeouts.Add(1)
}

// Refused counts operations turned away by a closed channel.
func (m *Metrics) Refused(op channel.Op) {
	m.ops.WithLabelValues(op.String(), OutcomeClosed).Inc()
	m.refused.Add(1)
}

// Closed flips the closed gauge and records what is left to drain.
func (m *Metrics) Closed(remaining int) {
	m.closed.Set(1)
	m.depth.Set(float64(remaining))
	m.curDepth.Store(int64(remaining))
	m.isClosed.Store(true)
}

// Snapshot exposes a copy of current metric values for inspection.
type Snapshot struct {
	Sent     int64
	Received int64
	Timeouts int64
	Refused  int64
	Depth    int64
	Closed   bool
}

// GetSnapshot returns the current metrics snapshot.
func (m *Metrics) GetSnapshot() Snapshot {
	return Snapshot{
		Sent:     m.sent.Load(),
		Received: m.received.Load(),
		Timeouts: m.timeouts.Load(),
		Refused:  m.refused.Load(),
		Depth:    m.curDepth.Load(),
		Closed:   m.isClosed.Load(),
	}
}

var _ channel.Observer = (*Metrics)(nil)
