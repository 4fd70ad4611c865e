package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LedgerMetrics covers both the append path and the adjustment workflow.
type LedgerMetrics struct {
	RecordsCreatedTotal       prometheus.CounterVec
	RecordsRejectedTotal      prometheus.CounterVec
	AppendDuration            prometheus.HistogramVec
	AdjustmentsRequestedTotal prometheus.CounterVec
	AdjustmentsDecidedTotal   prometheus.CounterVec
	PendingAdjustmentsGauge   prometheus.GaugeVec
	IntegrityChecksTotal      prometheus.CounterVec
}

func NewLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		RecordsCreatedTotal: *promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "timeclock_records_created_total",
			Help: "Ledger records created, by tenant, type and adjustment flag",
		}, []string{"tenant_id", "type", "is_adjustment"}),
		RecordsRejectedTotal: *promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "timeclock_records_rejected_total",
			Help: "Append attempts rejected before persisting, by reason",
		}, []string{"tenant_id", "reason"}),
		AppendDuration: *promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "timeclock_append_duration_seconds",
			Help:    "Wall time of the append path including NSR allocation",
			Buckets: prometheus.DefBuckets,
		}, []string{"tenant_id"}),
		AdjustmentsRequestedTotal: *promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "timeclock_adjustments_requested_total",
			Help: "Adjustment requests accepted as pending",
		}, []string{"tenant_id"}),
		AdjustmentsDecidedTotal: *promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "timeclock_adjustments_decided_total",
			Help: "Adjustment terminal transitions, by outcome",
		}, []string{"tenant_id", "status"}),
		PendingAdjustmentsGauge: *promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "timeclock_pending_adjustments",
			Help: "Currently pending adjustments per tenant",
		}, []string{"tenant_id"}),
		IntegrityChecksTotal: *promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "timeclock_integrity_checks_total",
			Help: "Signature verifications, by result",
		}, []string{"tenant_id", "result"}),
	}
}
