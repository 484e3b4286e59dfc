package metrics

import (
	"deltaml/delta/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// GovernanceMetrics tracks metrics for the training and consent gates.
//
// Metrics:
//   - delta_trainings_total: Training requests by kind and status
//   - delta_policy_denials_total: Gate denials by reason code
//   - delta_consent_denials_total: Consent-gate denials
//   - delta_active_model_info: Info gauge carrying the serving selection
type GovernanceMetrics struct {
	trainingsTotal      *prometheus.CounterVec
	policyDenialsTotal  *prometheus.CounterVec
	consentDenialsTotal prometheus.Counter
	activeModelInfo     *prometheus.GaugeVec
}

// NewGovernanceMetrics creates and registers governance metrics with the
// provided registry.
func NewGovernanceMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *GovernanceMetrics {
	gm := &GovernanceMetrics{
		trainingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "trainings_total",
				Help:      "Total number of training requests by model kind and outcome",
			},
			[]string{"kind", "status"},
		),

		policyDenialsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "policy_denials_total",
				Help:      "Total number of training-governance gate denials by reason",
			},
			[]string{"reason"},
		),

		consentDenialsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "consent_denials_total",
				Help:      "Total number of consent-gate denials",
			},
		),

		activeModelInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "active_model_info",
				Help:      "Info gauge set to 1 for the currently serving model version",
			},
			[]string{"model_id", "version"},
		),
	}

	registry.MustRegister(
		gm.trainingsTotal,
		gm.policyDenialsTotal,
		gm.consentDenialsTotal,
		gm.activeModelInfo,
	)

	return gm
}

// RecordTraining records the outcome of one training request.
func (gm *GovernanceMetrics) RecordTraining(kind, status string) {
	gm.trainingsTotal.WithLabelValues(kind, status).Inc()
}

// RecordPolicyDenial records one gate denial.
func (gm *GovernanceMetrics) RecordPolicyDenial(reason string) {
	gm.policyDenialsTotal.WithLabelValues(reason).Inc()
}

// RecordConsentDenial records one consent denial.
func (gm *GovernanceMetrics) RecordConsentDenial() {
	gm.consentDenialsTotal.Inc()
}

// SetActiveModel resets the info gauge to carry only the given selection.
func (gm *GovernanceMetrics) SetActiveModel(modelID, version string) {
	gm.activeModelInfo.Reset()
	if modelID != "" {
		gm.activeModelInfo.WithLabelValues(modelID, version).Set(1)
	}
}
