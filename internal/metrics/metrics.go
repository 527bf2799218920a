// internal/metrics/metrics.go
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tamzrod/edal/internal/edal"
)

const namespace = "edal"

// Metrics holds Prometheus metrics describing one chain and its mirror.
type Metrics struct {
	// Chain header state
	generation   prometheus.Gauge
	stateChanges prometheus.Gauge
	blocks       prometheus.Gauge

	// Per component type, labelled by display name
	componentCount  *prometheus.GaugeVec
	componentStatus *prometheus.GaugeVec // OverallStatus value

	writePending prometheus.Gauge // 1 while any instance has unsent write data

	// Mirror delivery
	mirrorPushes prometheus.Counter
	mirrorErrors prometheus.Counter
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "chain",
			Name:      "generation",
			Help:      "Generation count of the chain head block",
		}),
		stateChanges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "chain",
			Name:      "state_changes",
			Help:      "Overall state-change count of the chain",
		}),
		blocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "chain",
			Name:      "blocks",
			Help:      "Number of blocks in the chain",
		}),

		componentCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "component",
			Name:      "count",
			Help:      "Instances of a component type across the chain",
		}, []string{"type"}),
		componentStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "component",
			Name:      "status",
			Help:      "Overall status of a component type (0=ok, 1=write needed, 2=failed)",
		}, []string{"type"}),

		writePending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "write_pending",
			Help:      "1 while any component has write data pending",
		}),

		mirrorPushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mirror",
			Name:      "pushes_total",
			Help:      "Total successful mirror pushes",
		}),
		mirrorErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mirror",
			Name:      "errors_total",
			Help:      "Total failed mirror pushes",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.generation, m.stateChanges, m.blocks,
		m.componentCount, m.componentStatus,
		m.writePending,
		m.mirrorPushes, m.mirrorErrors,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Update refreshes every chain gauge. A failure on one component type
// does not stop the others; all failures are returned joined.
func (m *Metrics) Update(c *edal.Chain) error {
	if m == nil {
		return nil
	}

	gen, err := c.GenerationCount()
	if err != nil {
		return err
	}
	m.generation.Set(float64(gen))

	sc, err := c.OverallStateChangeCount()
	if err != nil {
		return err
	}
	m.stateChanges.Set(float64(sc))
	m.blocks.Set(float64(c.Len()))

	types, err := c.ComponentTypes()
	if err != nil {
		return err
	}

	var errs []error
	for _, ct := range types {
		n, err := c.SpecificComponentCount(ct)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		m.componentCount.WithLabelValues(ct.String()).Set(float64(n))

		st, err := c.ComponentOverallStatus(ct)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		m.componentStatus.WithLabelValues(ct.String()).Set(float64(st))
	}
	return errors.Join(errs...)
}

func (m *Metrics) SetWritePending(pending bool) {
	if m == nil {
		return
	}
	if pending {
		m.writePending.Set(1)
		return
	}
	m.writePending.Set(0)
}

// ObservePush counts one mirror push outcome.
func (m *Metrics) ObservePush(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.mirrorErrors.Inc()
		return
	}
	m.mirrorPushes.Inc()
}
