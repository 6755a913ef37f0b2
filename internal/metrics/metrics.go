package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulingMetrics counts slot computations and appointment mutations.
// A nil *SchedulingMetrics is valid and records nothing.
type SchedulingMetrics struct {
	slotComputations *prometheus.CounterVec
	openSlots        prometheus.Histogram
	mutations        *prometheus.CounterVec
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		slotComputations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "scheduling",
			Name:      "slot_computations_total",
			Help:      "Open-slot computations by outcome",
		}, []string{"outcome"}),
		openSlots: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "scheduling",
			Name:      "open_slots",
			Help:      "Number of open slots returned per computation",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
		}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "scheduling",
			Name:      "appointment_mutations_total",
			Help:      "Appointment create/update calls by operation and result",
		}, []string{"operation", "result"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.slotComputations, m.openSlots, m.mutations)
	return m
}

// ObserveSlots records one computation; open is zero when the day is full.
func (m *SchedulingMetrics) ObserveSlots(open int) {
	if m == nil {
		return
	}
	outcome := "open"
	if open == 0 {
		outcome = "full"
	}
	m.slotComputations.WithLabelValues(outcome).Inc()
	m.openSlots.Observe(float64(open))
}

func (m *SchedulingMetrics) ObserveSlotError() {
	if m == nil {
		return
	}
	m.slotComputations.WithLabelValues("error").Inc()
}

// ObserveMutation records result as "modified", "noop", "unmatched" or "error".
func (m *SchedulingMetrics) ObserveMutation(operation, result string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(operation, result).Inc()
}
