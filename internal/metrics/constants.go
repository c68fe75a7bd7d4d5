package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameQuestClaims          = "loyalty_quest_claims_total"
	MetricNameQuestsCompleted      = "loyalty_quests_completed_total"
	MetricNamePointsCredited       = "loyalty_points_credited_total"
	MetricNameTokensCredited       = "loyalty_tokens_credited_total"
	MetricNamePurchases            = "loyalty_purchases_total"
	MetricNameTokensSpent          = "loyalty_tokens_spent_total"
	MetricNameBoostersBackfilled   = "loyalty_boosters_backfilled_total"
	MetricNameTransactionRetries   = "loyalty_transaction_retries_total"
	MetricNameTransactionConflicts = "loyalty_transaction_conflicts_total"
	MetricNameSessionCacheLookups  = "loyalty_session_cache_lookups_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextQuestClaims          = "Quest reward claims by outcome"
	HelpTextQuestsCompleted      = "Quests moved to COMPLETED by activity"
	HelpTextPointsCredited       = "Loyalty points credited from quest rewards"
	HelpTextTokensCredited       = "Tokens credited from quest rewards"
	HelpTextPurchases            = "Shop purchases by outcome"
	HelpTextTokensSpent          = "Tokens debited by shop purchases"
	HelpTextBoostersBackfilled   = "Booster inventory rows given an explicit expiry"
	HelpTextTransactionRetries   = "Transactions retried after a conflict"
	HelpTextTransactionConflicts = "Transactions that still conflicted after retry"
	HelpTextSessionCacheLookups  = "Session lookups by cache result"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelOutcome   = "outcome"
	LabelOperation = "operation"
	LabelReward    = "reward_type"
	LabelResult    = "result"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeRenewed = "renewed"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUndecodable = "Event payload could not be decoded"
	LogMsgMetricsRecorded         = "Metrics recorded for event"
)
