package guard

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/dignilife/walletcore/internal/domain"
	"github.com/dignilife/walletcore/pkg/auth"
	"github.com/dignilife/walletcore/pkg/utils"
)

// IdemStore persists cached responses and short-lived in-flight locks.
type IdemStore interface {
	GetRecord(ctx context.Context, cacheKey string, now time.Time) (*domain.IdempotencyRecord, error)
	SaveRecord(ctx context.Context, rec *domain.IdempotencyRecord) error
	PutIfAbsent(ctx context.Context, lockKey string, now, expiresAt time.Time) (bool, error)
	Release(ctx context.Context, lockKey string) error
}

// RateStore admits or rejects one event against a sliding window.
type RateStore interface {
	Allow(ctx context.Context, identity, route string, limit int, window time.Duration, now time.Time) (bool, time.Duration, error)
}

var (
	idempotentHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "walletcore_idempotent_hits_total",
		Help: "Requests that passed through the idempotency guard.",
	})
	idempotentReplays = promauto.NewCounter(prometheus.CounterOpts{
		Name: "walletcore_idempotent_replays_total",
		Help: "Requests answered verbatim from the idempotency cache.",
	})
	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "walletcore_rate_limited_total",
		Help: "Requests rejected by the sliding-window rate limiter.",
	})
)

type Guard struct {
	idemStore IdemStore
	rateStore RateStore
	cacheTTL  time.Duration
	lockTTL   time.Duration
	limit     int
	window    time.Duration
	now       func() time.Time
}

func New(idemStore IdemStore, rateStore RateStore, cacheTTL, lockTTL time.Duration, limit int, window time.Duration) *Guard {
	return &Guard{
		idemStore: idemStore,
		rateStore: rateStore,
		cacheTTL:  cacheTTL,
		lockTTL:   lockTTL,
		limit:     limit,
		window:    window,
		now:       time.Now,
	}
}

// responseRecorder buffers the handler's response so a successful one can be
// cached and replayed byte for byte.
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (rec *responseRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *responseRecorder) Write(p []byte) (int, error) {
	rec.body.Write(p)
	return rec.ResponseWriter.Write(p)
}

// Idempotency deduplicates mutating requests that carry an Idempotency-Key
// header. The cache key binds the key to the user and the body hash, so the
// same key with a different payload is a different request. Requests without
// the header pass through untouched.
func (g *Guard) Idempotency(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("Idempotency-Key")
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}
		userID, ok := r.Context().Value(auth.UserIDKey).(int)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		bodyHash := sha256.Sum256(body)
		cacheKey := fmt.Sprintf("idemp:%d:%s:%s", userID, key, hex.EncodeToString(bodyHash[:]))
		now := g.now()
		idempotentHits.Inc()

		cached, err := g.idemStore.GetRecord(r.Context(), cacheKey, now)
		if err != nil {
			zap.L().Error("idempotency cache lookup failed", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		if cached != nil {
			idempotentReplays.Inc()
			replay(w, cached)
			return
		}

		lockKey := cacheKey + ":lock"
		acquired, err := g.idemStore.PutIfAbsent(r.Context(), lockKey, now, now.Add(g.lockTTL))
		if err != nil {
			zap.L().Error("idempotency lock failed", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		if !acquired {
			utils.RespondWithError(w, http.StatusConflict, "duplicate request processing")
			return
		}

		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status >= 200 && rec.status < 300 {
			record := &domain.IdempotencyRecord{
				CacheKey:   cacheKey,
				StatusCode: rec.status,
				Headers:    map[string]string{"Content-Type": w.Header().Get("Content-Type")},
				Body:       rec.body.Bytes(),
				ExpiresAt:  now.Add(g.cacheTTL),
			}
			if err := g.idemStore.SaveRecord(r.Context(), record); err != nil {
				zap.L().Error("failed to cache idempotent response", zap.Error(err))
			}
		}
		if err := g.idemStore.Release(r.Context(), lockKey); err != nil {
			zap.L().Error("failed to release idempotency lock", zap.Error(err))
		}
	})
}

func replay(w http.ResponseWriter, rec *domain.IdempotencyRecord) {
	for name, value := range rec.Headers {
		if value != "" {
			w.Header().Set(name, value)
		}
	}
	w.WriteHeader(rec.StatusCode)
	_, _ = w.Write(rec.Body)
}

// RateLimit bounds each user (falling back to the remote address) to the
// configured number of requests per sliding window. A store failure lets the
// request through: availability over strictness for a limiter.
func (g *Guard) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := r.RemoteAddr
		if userID, ok := r.Context().Value(auth.UserIDKey).(int); ok {
			identity = strconv.Itoa(userID)
		}

		allowed, retryAfter, err := g.rateStore.Allow(r.Context(), identity, r.URL.Path, g.limit, g.window, g.now())
		if err != nil {
			zap.L().Warn("rate limiter unavailable, admitting request",
				zap.String("identity", identity),
				zap.Error(err),
			)
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			rateLimited.Inc()
			seconds := int(retryAfter.Round(time.Second).Seconds())
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			utils.RespondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
