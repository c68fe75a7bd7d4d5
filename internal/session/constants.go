package session

import "time"

// Cache defaults
const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = time.Minute
)

// DefaultSessionTTL is the lifetime of sessions issued through the admin API
const DefaultSessionTTL = 24 * time.Hour

// tokenBytes is the entropy of an issued token before hex encoding
const tokenBytes = 32

// Header handling
const (
	HeaderAuthorization = "Authorization"
	BearerPrefix        = "Bearer "
)

// Metric label values for cache lookups
const (
	CacheResultHit  = "hit"
	CacheResultMiss = "miss"
)

// Storefront messages for rejected sessions
const (
	ErrMsgAuthRequired   = "Authentification requise"
	ErrMsgSessionExpired = "Session expirée"
)

// Log messages
const (
	LogMsgSessionRejected = "Session rejected"
	LogMsgSessionIssued   = "Session issued"
)
