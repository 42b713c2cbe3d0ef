package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the dispute lifecycle.
type Metrics struct {
	OperationDuration     *prometheus.HistogramVec
	OperationErrors       *prometheus.CounterVec
	ProposalsCreated      prometheus.Counter
	ProposalsVetoed       prometheus.Counter
	ProposalsExecuted     prometheus.Counter
	ProposalsDeleted      prometheus.Counter
	SlashedAmount         prometheus.Counter
	AuthorizationRejected *prometheus.CounterVec
	JanitorBacklog        prometheus.Gauge
}

// New registers on reg. A nil reg uses the process default.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "arbiter_operation_duration_seconds",
			Help:    "Duration of resolver operations, by operation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
		OperationErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "arbiter_operation_errors_total",
			Help: "Failed resolver operations, by operation and error code",
		}, []string{"operation", "code"}),
		ProposalsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "arbiter_slash_proposals_created_total",
			Help: "Slash proposals opened",
		}),
		ProposalsVetoed: f.NewCounter(prometheus.CounterOpts{
			Name: "arbiter_slash_proposals_vetoed_total",
			Help: "Slash proposals vetoed by a resolver",
		}),
		ProposalsExecuted: f.NewCounter(prometheus.CounterOpts{
			Name: "arbiter_slash_proposals_executed_total",
			Help: "Slash proposals executed against a vault",
		}),
		ProposalsDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "arbiter_slash_proposals_deleted_total",
			Help: "Completed slash proposals removed",
		}),
		SlashedAmount: f.NewCounter(prometheus.CounterOpts{
			Name: "arbiter_slashed_amount_total",
			Help: "Sum of executed slash amounts",
		}),
		AuthorizationRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "arbiter_authorization_rejected_total",
			Help: "Signer mismatches, by operation",
		}, []string{"operation"}),
		JanitorBacklog: f.NewGauge(prometheus.GaugeOpts{
			Name: "arbiter_janitor_backlog",
			Help: "Completed proposals past their delete deadline at the last sweep",
		}),
	}
}

// ObserveOperation records the duration of op. Call with time.Now() at the
// start of the operation.
func (m *Metrics) ObserveOperation(op string, start time.Time) {
	m.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementOperationError(op, code string) {
	m.OperationErrors.WithLabelValues(op, code).Inc()
}

func (m *Metrics) IncrementAuthorizationRejected(op string) {
	m.AuthorizationRejected.WithLabelValues(op).Inc()
}

func (m *Metrics) IncrementProposalCreated() { m.ProposalsCreated.Inc() }

func (m *Metrics) IncrementProposalVetoed() { m.ProposalsVetoed.Inc() }

func (m *Metrics) IncrementProposalDeleted() { m.ProposalsDeleted.Inc() }

// RecordExecution counts an executed slash and its amount.
func (m *Metrics) RecordExecution(amount uint64) {
	m.ProposalsExecuted.Inc()
	m.SlashedAmount.Add(float64(amount))
}

func (m *Metrics) SetJanitorBacklog(n int) {
	m.JanitorBacklog.Set(float64(n))
}
