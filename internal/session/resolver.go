package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/logger"
	"github.com/osse101/RestoLoyalty_Go/internal/metrics"
	"github.com/osse101/RestoLoyalty_Go/internal/repository"
)

// Resolver maps bearer tokens to user IDs, caching sessions for a short TTL
type Resolver struct {
	repo  repository.Sessions
	cache *expirable.LRU[string, domain.Session]
	now   func() time.Time
}

// NewResolver creates a session resolver. Non-positive size or ttl fall back to defaults.
func NewResolver(repo repository.Sessions, size int, ttl time.Duration) *Resolver {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Resolver{
		repo:  repo,
		cache: expirable.NewLRU[string, domain.Session](size, nil, ttl),
		now:   time.Now,
	}
}

// WithClock overrides the time source
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Resolve returns the user ID owning token
func (r *Resolver) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrUnauthorized
	}

	sess, ok := r.cache.Get(token)
	if ok {
		metrics.SessionCacheLookups.WithLabelValues(CacheResultHit).Inc()
	} else {
		metrics.SessionCacheLookups.WithLabelValues(CacheResultMiss).Inc()
		stored, err := r.repo.GetSession(ctx, token)
		if err != nil {
			return "", err
		}
		sess = *stored
		r.cache.Add(token, sess)
	}

	if sess.Expired(r.now()) {
		r.cache.Remove(token)
		return "", domain.ErrSessionExpired
	}
	return sess.UserID, nil
}

// Issue creates a session for userID that lives for ttl
func (r *Resolver) Issue(ctx context.Context, userID string, ttl time.Duration) (*domain.Session, error) {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	token, err := newToken()
	if err != nil {
		return nil, err
	}
	sess := &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: r.now().Add(ttl),
	}
	if err := r.repo.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgSessionIssued, "user_id", userID, "expires_at", sess.ExpiresAt)
	return sess, nil
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
