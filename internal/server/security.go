package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/osse101/RestoLoyalty_Go/internal/logger"
)

// APIKeyMiddleware protects back-office routes. An empty configured key
// rejects every request.
func APIKeyMiddleware(apiKey string, trustedProxies []string, tracker *ActivityTracker) func(http.Handler) http.Handler {
	expected := []byte(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(HeaderAPIKey)
			if len(expected) > 0 && subtle.ConstantTimeCompare([]byte(provided), expected) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r, trustedProxies)
			tracker.RecordFailedAuth(ip)
			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"path", r.URL.Path,
				"has_key", provided != "",
				"ip", ip)
			writeJSONError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		})
	}
}

func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

var securityHeaders = map[string]string{
	HeaderContentType:    HeaderValueNoSniff,
	HeaderFrameOptions:   HeaderValueSameOrigin,
	HeaderXSSProtection:  HeaderValueXSSBlock,
	HeaderReferrerPolicy: HeaderValueReferrerStrictOrigin,
}

func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for k, v := range securityHeaders {
				h.Set(k, v)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSONError matches the handler package's error envelope
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{false, msg})
}
