package categoryassign

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Hook outcomes recorded in the counters.
const (
	OutcomeAssigned        = "assigned"
	OutcomeSkippedContext  = "skipped_context"
	OutcomeDisabled        = "disabled"
	OutcomeNoCategory      = "no_category"
	OutcomeInvalidCategory = "invalid_category"
	OutcomeUnsupportedItem = "unsupported_item"

	OutcomeLocked          = "locked"
	OutcomeDefaulted       = "defaulted"
	OutcomeNoField         = "no_field"
	OutcomeExtended        = "extended"
	OutcomeFragmentMissing = "fragment_missing"
	OutcomeFragmentInvalid = "fragment_invalid"
	OutcomeNoForm          = "no_form"
	OutcomeIgnored         = "ignored"
)

const (
	formLabelArticle    = "article"
	formLabelTransition = "transition"
	formLabelOther      = "other"
)

type metrics struct {
	transitionHooks *prometheus.CounterVec
	formHooks       *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		transitionHooks: registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "categoryassign_transition_hook_total",
			Help: "Pre-transition hook invocations by outcome",
		}, []string{"outcome"})),
		formHooks: registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "categoryassign_form_hook_total",
			Help: "Prepare-form hook invocations by form and outcome",
		}, []string{"form", "outcome"})),
	}
}

// registerCounterVec registers c, reusing an identical collector when one is
// already registered.
func registerCounterVec(reg prometheus.Registerer, c *prometheus.CounterVec) *prometheus.CounterVec {
	if reg == nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
	}
	return c
}

func (m *metrics) transition(outcome string) {
	m.transitionHooks.WithLabelValues(outcome).Inc()
}

func (m *metrics) form(formLabel, outcome string) {
	m.formHooks.WithLabelValues(formLabel, outcome).Inc()
}
