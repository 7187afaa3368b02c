package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
	"github.com/srgjo27/vehicle_rental/internal/platform/security"
)

type ctxKey int

const (
	principalKey ctxKey = iota
	claimsKey
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_http_requests_total",
		Help: "HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rental_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	rateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rental_http_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	})
)

// Authenticator turns a bearer token into the calling principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Principal, *security.Claims, error)
}

func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}

func claimsFrom(ctx context.Context) *security.Claims {
	c, _ := ctx.Value(claimsKey).(*security.Claims)
	return c
}

func withPrincipal(ctx context.Context, p domain.Principal, claims *security.Claims) context.Context {
	ctx = context.WithValue(ctx, principalKey, p)
	return context.WithValue(ctx, claimsKey, claims)
}

// Authenticate requires a valid "Authorization: Bearer <token>" header.
func Authenticate(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				writeError(w, r, logger, domain.ErrAuthRequired("Access token required"))
				return
			}

			principal, claims, err := auth.Authenticate(r.Context(), strings.TrimSpace(token))
			if err != nil {
				writeError(w, r, logger, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), principal, claims)))
		})
	}
}

func AdminOnly(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				writeError(w, r, logger, domain.ErrAuthRequired("Access token required"))
				return
			}
			if !p.IsAdmin() {
				writeError(w, r, logger, domain.ErrAccessDenied("Admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// OwnerLookup returns the user that owns the record with the given id.
type OwnerLookup func(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

// SelfLookup treats the path id as the owning user, for /users/{id}.
func SelfLookup(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	return id, nil
}

// Authorize lets the owner of the {id} path record, or an admin, through.
func Authorize(lookup OwnerLookup, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				writeError(w, r, logger, domain.ErrAuthRequired("Access token required"))
				return
			}

			id, err := pathID(r)
			if err != nil {
				writeError(w, r, logger, err)
				return
			}

			owner, err := lookup(r.Context(), id)
			if err != nil {
				writeError(w, r, logger, err)
				return
			}

			if !p.CanAccess(owner) {
				writeError(w, r, logger, domain.ErrAccessDenied("Access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit is a fixed-window limiter per client IP kept in Redis. Redis
// failures let the request through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rdb == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			key := "ratelimit:" + clientIP(r)

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				logger.Warn("rate limiter unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				// A counter without a TTL would lock the client out for good.
				if err := rdb.Expire(ctx, key, window).Err(); err != nil {
					logger.Warn("rate limiter window not set", zap.String("key", key), zap.Error(err))
					rdb.Del(context.WithoutCancel(ctx), key)
				}
			}

			if count > int64(limit) {
				rateLimitedTotal.Inc()
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				writeJSON(w, http.StatusTooManyRequests, envelope{
					Message: "Too many requests, please try again later",
					Error:   "RATE_LIMITED",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

const (
	idempotencyHeader  = "Idempotency-Key"
	idempotencyPending = "PROCESSING"
	idempotencyLockTTL = 30 * time.Second
	idempotencyTTL     = 24 * time.Hour
)

type storedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

func idempotencyKey(r *http.Request, key string) string {
	if p, ok := PrincipalFrom(r.Context()); ok {
		return fmt.Sprintf("idempotency:%s:%s", p.UserID, key)
	}
	return "idempotency:" + key
}

// Idempotency replays the stored response when a request repeats an
// Idempotency-Key. Only successful responses are stored; failures release
// the key so the client can retry.
func Idempotency(rdb *redis.Client, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(idempotencyHeader)
			if rdb == nil || key == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			idemKey := idempotencyKey(r, key)

			val, err := rdb.Get(ctx, idemKey).Result()
			switch {
			case err == nil && val == idempotencyPending:
				writeError(w, r, logger, domain.ErrConflict("A request with this Idempotency-Key is still being processed"))
				return
			case err == nil:
				var stored storedResponse
				if jsonErr := json.Unmarshal([]byte(val), &stored); jsonErr == nil {
					w.Header().Set("Content-Type", "application/json")
					w.Header().Set("X-Idempotency-Replayed", "true")
					w.WriteHeader(stored.Status)
					_, _ = w.Write([]byte(stored.Body))
					return
				}
			case !errors.Is(err, redis.Nil):
				logger.Warn("idempotency store unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			acquired, err := rdb.SetNX(ctx, idemKey, idempotencyPending, idempotencyLockTTL).Result()
			if err != nil || !acquired {
				writeError(w, r, logger, domain.ErrConflict("A request with this Idempotency-Key is still being processed"))
				return
			}

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			var body bytes.Buffer
			ww.Tee(&body)

			next.ServeHTTP(ww, r)

			if ww.Status() >= 300 {
				rdb.Del(context.WithoutCancel(ctx), idemKey)
				return
			}

			payload, _ := json.Marshal(storedResponse{Status: ww.Status(), Body: body.String()})
			if err := rdb.Set(context.WithoutCancel(ctx), idemKey, payload, idempotencyTTL).Err(); err != nil {
				logger.Warn("failed to store idempotent response", zap.String("key", key), zap.Error(err))
			}
		})
	}
}

// Metrics records request counts and latency under the matched chi route.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("request_id", chimw.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
