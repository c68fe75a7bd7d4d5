package server

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// clientWindow is one client's counters for the current window
type clientWindow struct {
	started    time.Time
	requests   int
	failedAuth int
}

// ActivityTracker keeps per-IP request and failed-auth counts over a fixed
// window. Clients are held in a bounded LRU so a flood of distinct addresses
// cannot grow memory without limit.
type ActivityTracker struct {
	mu          sync.Mutex
	clients     *expirable.LRU[string, *clientWindow]
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

// NewActivityTracker allows maxRequests per client per DetectorWindow.
// Non-positive maxRequests falls back to DetectorMaxRequests.
func NewActivityTracker(maxRequests int) *ActivityTracker {
	if maxRequests <= 0 {
		maxRequests = DetectorMaxRequests
	}
	return &ActivityTracker{
		clients:     expirable.NewLRU[string, *clientWindow](DetectorMaxClients, nil, 2*DetectorWindow),
		maxRequests: maxRequests,
		window:      DetectorWindow,
		now:         time.Now,
	}
}

// current returns ip's window, starting a fresh one when the old one is over.
// Caller holds mu.
func (t *ActivityTracker) current(ip string) *clientWindow {
	now := t.now()
	w, ok := t.clients.Get(ip)
	if !ok || now.Sub(w.started) >= t.window {
		w = &clientWindow{started: now}
		t.clients.Add(ip, w)
	}
	return w
}

// Allow counts a request and reports whether ip is still within its budget
func (t *ActivityTracker) Allow(ip string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	w := t.current(ip)
	w.requests++
	if w.requests <= t.maxRequests {
		return true
	}
	if over := w.requests - t.maxRequests; over == 1 || over%100 == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", w.requests)
	}
	return false
}

func (t *ActivityTracker) RecordFailedAuth(ip string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w := t.current(ip)
	w.failedAuth++
	if w.failedAuth >= DetectorFailedAuthAlert {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", w.failedAuth)
	}
}

// FailedAuth returns ip's failed attempts in its current window
func (t *ActivityTracker) FailedAuth(ip string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if w, ok := t.clients.Peek(ip); ok && t.now().Sub(w.started) < t.window {
		return w.failedAuth
	}
	return 0
}

// RateLimitMiddleware answers 429 once a client has spent its request budget
func RateLimitMiddleware(trustedProxies []string, tracker *ActivityTracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !tracker.Allow(clientIP(r, trustedProxies)) {
				writeJSONError(w, http.StatusTooManyRequests, ErrMsgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP is the peer address, or the last X-Forwarded-For hop when the
// peer is one of trustedProxies.
func clientIP(r *http.Request, trustedProxies []string) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" || !isTrusted(peer, trustedProxies) {
		return peer
	}
	if i := strings.LastIndexByte(forwarded, ','); i >= 0 {
		forwarded = forwarded[i+1:]
	}
	return strings.TrimSpace(forwarded)
}

func isTrusted(ip string, proxies []string) bool {
	for _, p := range proxies {
		if p == ip {
			return true
		}
	}
	return false
}
