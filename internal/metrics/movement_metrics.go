package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// MovementMetrics contadores Prometheus del procesamiento de movimientos.
// Implementa inventory.MovementMetrics.
type MovementMetrics struct {
	committed    *prometheus.CounterVec
	rejected     *prometheus.CounterVec
	lines        prometheus.Histogram
	ledgerWrites *prometheus.CounterVec
}

// NewMovementMetrics registra los colectores en el registerer por defecto.
func NewMovementMetrics() *MovementMetrics {
	return newMovementMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newMovementMetricsWithRegisterer(registerer prometheus.Registerer) *MovementMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &MovementMetrics{
		committed: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "logitrack_movements_committed_total",
			Help: "Total de movimientos confirmados, por tipo",
		}, []string{"type"}),
		rejected: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "logitrack_movements_rejected_total",
			Help: "Total de movimientos rechazados, por tipo y motivo",
		}, []string{"type", "reason"}),
		lines: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "logitrack_movement_lines",
			Help:    "Renglones por movimiento confirmado",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
		}),
		ledgerWrites: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "logitrack_ledger_writes_total",
			Help: "Total de escrituras al ledger por movimientos confirmados, por operación (insert|update)",
		}, []string{"op"}),
	}
}

// MovementCommitted cuenta un movimiento confirmado y sus renglones.
func (m *MovementMetrics) MovementCommitted(movementType string, lines int) {
	m.committed.WithLabelValues(movementType).Inc()
	m.lines.Observe(float64(lines))
}

// MovementRejected cuenta un rechazo clasificado por motivo.
func (m *MovementMetrics) MovementRejected(movementType, reason string) {
	m.rejected.WithLabelValues(movementType, reason).Inc()
}

// LedgerWritten cuenta una escritura al ledger (insert o update).
func (m *MovementMetrics) LedgerWritten(op string) {
	m.ledgerWrites.WithLabelValues(op).Inc()
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}
