package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics tracks the lifecycle of checkout sessions and their
// reconciliation outcomes.
type CheckoutMetrics struct {
	sessionsOpened    prometheus.Counter
	confirmSettled    prometheus.Counter
	confirmDuplicate  prometheus.Counter
	confirmIncomplete prometheus.Counter
	providerFailures  prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	m := &CheckoutMetrics{
		sessionsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "checkout_sessions_opened_total",
			Help: "Checkout sessions opened with the payment provider.",
		}),
		confirmSettled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "checkout_confirmations_settled_total",
			Help: "Orders transitioned from unpaid to paid.",
		}),
		confirmDuplicate: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "checkout_confirmations_duplicate_total",
			Help: "Confirmations that found the order already paid.",
		}),
		confirmIncomplete: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "checkout_confirmations_incomplete_total",
			Help: "Confirmations where the provider reported a non-paid status.",
		}),
		providerFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "checkout_provider_failures_total",
			Help: "Failed calls to the payment provider.",
		}),
	}
	reg.MustRegister(m.sessionsOpened, m.confirmSettled, m.confirmDuplicate, m.confirmIncomplete, m.providerFailures)
	return m
}

// IncSessionsOpened counts a successfully opened checkout session.
func (m *CheckoutMetrics) IncSessionsOpened() {
	if m == nil || m.sessionsOpened == nil {
		return
	}
	m.sessionsOpened.Inc()
}

// IncConfirmSettled counts an unpaid order transitioning to paid.
func (m *CheckoutMetrics) IncConfirmSettled() {
	if m == nil || m.confirmSettled == nil {
		return
	}
	m.confirmSettled.Inc()
}

// IncConfirmDuplicate counts a confirmation that was a no-op because the
// order had already settled.
func (m *CheckoutMetrics) IncConfirmDuplicate() {
	if m == nil || m.confirmDuplicate == nil {
		return
	}
	m.confirmDuplicate.Inc()
}

// IncConfirmIncomplete counts a confirmation rejected because the provider
// reported a non-paid status.
func (m *CheckoutMetrics) IncConfirmIncomplete() {
	if m == nil || m.confirmIncomplete == nil {
		return
	}
	m.confirmIncomplete.Inc()
}

// IncProviderFailures counts a failed provider call.
func (m *CheckoutMetrics) IncProviderFailures() {
	if m == nil || m.providerFailures == nil {
		return
	}
	m.providerFailures.Inc()
}
