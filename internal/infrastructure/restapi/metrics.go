package restapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics implements service.FetchMetrics on prometheus counters.
type Metrics struct {
	fetchCycles       prometheus.Counter
	supersededCycles  prometheus.Counter
	fetchedAccounts   prometheus.Counter
	failedAccounts    prometheus.Counter
	actionsDispatched *prometheus.CounterVec
}

// NewMetrics registers the service's metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		fetchCycles: factory.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_fetch_cycles_total",
			Help: "Completed portfolio fetch cycles.",
		}),
		supersededCycles: factory.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_fetch_cycles_superseded_total",
			Help: "Fetch cycles discarded because a newer cycle was applied first.",
		}),
		fetchedAccounts: factory.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_accounts_fetched_total",
			Help: "Accounts successfully fetched across all cycles.",
		}),
		failedAccounts: factory.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_accounts_failed_total",
			Help: "Account fetches that failed and were omitted from the portfolio.",
		}),
		actionsDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_actions_dispatched_total",
			Help: "Send/receive action intents dispatched, by action and outcome.",
		}, []string{"action", "outcome"}),
	}
}

// CycleCompleted implements service.FetchMetrics.
func (m *Metrics) CycleCompleted(accounts int, failures int) {
	m.fetchCycles.Inc()
	m.fetchedAccounts.Add(float64(accounts))
	m.failedAccounts.Add(float64(failures))
}

// CycleSuperseded implements service.FetchMetrics.
func (m *Metrics) CycleSuperseded() {
	m.supersededCycles.Inc()
}

func (m *Metrics) actionDispatched(action, outcome string) {
	m.actionsDispatched.WithLabelValues(action, outcome).Inc()
}
