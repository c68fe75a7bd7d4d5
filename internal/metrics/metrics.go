package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	QuestClaimsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuestClaims,
			Help: HelpTextQuestClaims,
		},
		[]string{LabelOutcome},
	)

	QuestsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameQuestsCompleted,
			Help: HelpTextQuestsCompleted,
		},
	)

	PointsCredited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePointsCredited,
			Help: HelpTextPointsCredited,
		},
	)

	TokensCredited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTokensCredited,
			Help: HelpTextTokensCredited,
		},
	)

	PurchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePurchases,
			Help: HelpTextPurchases,
		},
		[]string{LabelOutcome},
	)

	TokensSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTokensSpent,
			Help: HelpTextTokensSpent,
		},
	)

	BoostersBackfilled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBoostersBackfilled,
			Help: HelpTextBoostersBackfilled,
		},
	)
)

// Persistence Metrics
var (
	TransactionRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTransactionRetries,
			Help: HelpTextTransactionRetries,
		},
		[]string{LabelOperation},
	)

	TransactionConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTransactionConflicts,
			Help: HelpTextTransactionConflicts,
		},
		[]string{LabelOperation},
	)

	SessionCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSessionCacheLookups,
			Help: HelpTextSessionCacheLookups,
		},
		[]string{LabelResult},
	)
)
