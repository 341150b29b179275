// Package measure provides a Playable wrapper that records metrics
// using github.com/prometheus/client_golang.
package measure

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	pl "github.com/regionplay/go-playable"
	"go.uber.org/multierr"
	"golang.org/x/xerrors"
)

// New wraps p, providing metrics on Play. The metrics are named with prefix
// and an underscore and are registered with reg. If any of them cannot be
// registered, none of them stay registered.
func New(prefix string, p pl.Playable, reg prometheus.Registerer) (*Playable, error) {
	m := &Playable{
		backend: p,

		playNum: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_play_total",
			Help: "Number of Play calls.",
		}),
		playErr: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_play_errors_total",
			Help: "Number of Play calls that returned an error.",
		}),
		playLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    prefix + "_play_latency_seconds",
			Help:    "Latency of Play calls.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	var (
		errs       error
		registered []prometheus.Collector
	)
	for _, c := range []prometheus.Collector{m.playNum, m.playErr, m.playLatency} {
		if err := reg.Register(c); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		registered = append(registered, c)
	}
	if errs != nil {
		// all or nothing: a failed New leaves reg as it found it
		for _, c := range registered {
			reg.Unregister(c)
		}
		return nil, xerrors.Errorf("registering %s metrics: %w", prefix, errs)
	}
	return m, nil
}

// Playable counts and times the Play calls of the Playable it wraps.
type Playable struct {
	backend pl.Playable

	playNum     prometheus.Counter
	playErr     prometheus.Counter
	playLatency prometheus.Histogram
}

var _ pl.Shim = (*Playable)(nil)

func recordLatency(h prometheus.Histogram, start time.Time) {
	h.Observe(time.Since(start).Seconds())
}

func (m *Playable) Play(ctx context.Context) (pl.Output, error) {
	defer recordLatency(m.playLatency, time.Now())
	m.playNum.Inc()
	out, err := m.backend.Play(ctx)
	if err != nil {
		m.playErr.Inc()
	}
	return out, err
}

// Children implements pl.Shim
func (m *Playable) Children() []pl.Playable {
	return []pl.Playable{m.backend}
}
