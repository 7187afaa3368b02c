package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
	"github.com/srgjo27/vehicle_rental/internal/core/services"
	"github.com/srgjo27/vehicle_rental/internal/platform/security"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", domain.ErrValidation("bad"), http.StatusBadRequest},
		{"auth required", domain.ErrAuthRequired("no token"), http.StatusUnauthorized},
		{"access denied", domain.ErrAccessDenied("nope"), http.StatusForbidden},
		{"not found", domain.ErrNotFound("missing"), http.StatusNotFound},
		{"conflict", domain.ErrConflict("taken"), http.StatusBadRequest},
		{"invalid state", domain.ErrInvalidState("too late"), http.StatusBadRequest},
		{"no-op", domain.ErrNoOp("nothing"), http.StatusBadRequest},
		{"wrapped", fmt.Errorf("outer: %w", domain.ErrNotFound("missing")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), zap.NewNop(), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			body := decodeEnvelope(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, string(domain.KindOf(tt.err)), body.Error)
		})
	}
}

func TestWriteError_HidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()

	writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), zap.NewNop(), errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestDecode(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		var req services.LoginRequest
		err := decode(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{")), &req)

		assert.True(t, domain.IsKind(err, domain.KindValidation))
		assert.Equal(t, "Invalid JSON body", err.Error())
	})

	t.Run("uses json field names", func(t *testing.T) {
		var req services.CreateBookingRequest
		body := `{"vehicle_id":"` + uuid.NewString() + `","return_date":"2026-03-04T10:00:00Z","total_amount":10}`
		err := decode(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), &req)

		assert.Equal(t, "booking_date is required", err.Error())
	})

	t.Run("accepts plain dates", func(t *testing.T) {
		var req services.CreateBookingRequest
		body := `{"vehicle_id":"` + uuid.NewString() + `","booking_date":"2026-06-01","return_date":"2026-06-03T10:00:00Z","total_amount":10}`

		require.NoError(t, decode(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), &req))
		assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), req.BookingDate)
		assert.Equal(t, time.Date(2026, 6, 3, 10, 0, 0, 0, time.UTC), req.ReturnDate.UTC())
		assert.Equal(t, 10.0, req.TotalAmount)
	})

	t.Run("names the bad date field", func(t *testing.T) {
		var req services.CreateBookingRequest
		body := `{"vehicle_id":"` + uuid.NewString() + `","booking_date":"01/06/2026","return_date":"2026-06-03","total_amount":10}`
		err := decode(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), &req)

		assert.True(t, domain.IsKind(err, domain.KindValidation))
		assert.Equal(t, "booking_date must be a date (YYYY-MM-DD) or an RFC 3339 timestamp", err.Error())
	})

	t.Run("update keeps omitted return date nil", func(t *testing.T) {
		var req services.UpdateBookingRequest

		require.NoError(t, decode(httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"total_amount":20}`)), &req))
		assert.Nil(t, req.ReturnDate)

		require.NoError(t, decode(httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"return_date":"2026-06-05"}`)), &req))
		require.NotNil(t, req.ReturnDate)
		assert.Equal(t, time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC), *req.ReturnDate)
	})

	t.Run("valid", func(t *testing.T) {
		var req services.LoginRequest
		body := `{"email":"jane@example.com","password":"secret1"}`

		require.NoError(t, decode(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), &req))
		assert.Equal(t, "jane@example.com", req.Email)
	})
}

type stubAuthenticator struct {
	principal domain.Principal
	err       error
}

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (domain.Principal, *security.Claims, error) {
	if s.err != nil {
		return domain.Principal{}, nil, s.err
	}
	return s.principal, &security.Claims{}, nil
}

func TestAuthenticate(t *testing.T) {
	caller := domain.Principal{UserID: uuid.New(), Role: domain.RoleUser}

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Authenticate(stubAuthenticator{principal: caller}, zap.NewNop())(okHandler).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Access token required", decodeEnvelope(t, rec).Message)
	})

	t.Run("rejected token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer revoked")

		Authenticate(stubAuthenticator{err: domain.ErrAuthRequired("Token has been revoked")}, zap.NewNop())(okHandler).
			ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("stores principal", func(t *testing.T) {
		var got domain.Principal
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = PrincipalFrom(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		Authenticate(stubAuthenticator{principal: caller}, zap.NewNop())(next).ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, caller, got)
	})
}

func asCaller(p domain.Principal) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p, nil)))
		})
	}
}

func TestAdminOnly(t *testing.T) {
	user := domain.Principal{UserID: uuid.New(), Role: domain.RoleUser}
	admin := domain.Principal{UserID: uuid.New(), Role: domain.RoleAdmin}

	rec := httptest.NewRecorder()
	asCaller(user)(AdminOnly(zap.NewNop())(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin access required", decodeEnvelope(t, rec).Message)

	rec = httptest.NewRecorder()
	asCaller(admin)(AdminOnly(zap.NewNop())(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthorize(t *testing.T) {
	owner := uuid.New()
	recordID := uuid.New()

	lookup := func(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
		if id != recordID {
			return uuid.Nil, domain.ErrNotFound("Booking not found")
		}
		return owner, nil
	}

	serve := func(caller domain.Principal, path string) *httptest.ResponseRecorder {
		r := chi.NewRouter()
		r.Use(asCaller(caller))
		r.With(Authorize(lookup, zap.NewNop())).Get("/records/{id}", okHandler)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	path := "/records/" + recordID.String()
	ownerCaller := domain.Principal{UserID: owner, Role: domain.RoleUser}
	stranger := domain.Principal{UserID: uuid.New(), Role: domain.RoleUser}
	admin := domain.Principal{UserID: uuid.New(), Role: domain.RoleAdmin}

	tests := []struct {
		name   string
		caller domain.Principal
		path   string
		status int
	}{
		{"owner", ownerCaller, path, http.StatusOK},
		{"admin", admin, path, http.StatusOK},
		{"stranger", stranger, path, http.StatusForbidden},
		{"unknown record", admin, "/records/" + uuid.NewString(), http.StatusNotFound},
		{"malformed id", admin, "/records/not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, serve(tt.caller, tt.path).Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	const key = "ratelimit:192.0.2.1"

	t.Run("first request starts the window", func(t *testing.T) {
		db, mockRedis := redismock.NewClientMock()
		mockRedis.ExpectIncr(key).SetVal(1)
		mockRedis.ExpectExpire(key, time.Hour).SetVal(true)

		rec := httptest.NewRecorder()
		RateLimit(db, 2, time.Hour, zap.NewNop())(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NoError(t, mockRedis.ExpectationsWereMet())
	})

	t.Run("failed expire drops the counter", func(t *testing.T) {
		db, mockRedis := redismock.NewClientMock()
		mockRedis.ExpectIncr(key).SetVal(1)
		mockRedis.ExpectExpire(key, time.Hour).SetErr(errors.New("i/o timeout"))
		mockRedis.ExpectDel(key).SetVal(1)

		rec := httptest.NewRecorder()
		RateLimit(db, 2, time.Hour, zap.NewNop())(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NoError(t, mockRedis.ExpectationsWereMet())
	})

	t.Run("over the limit", func(t *testing.T) {
		db, mockRedis := redismock.NewClientMock()
		mockRedis.ExpectIncr(key).SetVal(3)

		rec := httptest.NewRecorder()
		RateLimit(db, 2, time.Hour, zap.NewNop())(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "3600", rec.Header().Get("Retry-After"))
		assert.NoError(t, mockRedis.ExpectationsWereMet())
	})

	t.Run("redis down lets requests through", func(t *testing.T) {
		db, mockRedis := redismock.NewClientMock()
		mockRedis.ExpectIncr(key).SetErr(errors.New("connection refused"))

		rec := httptest.NewRecorder()
		RateLimit(db, 2, time.Hour, zap.NewNop())(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func idempotentRequest() *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{}`))
	req.Header.Set(idempotencyHeader, "key-1")
	return req
}

func TestIdempotency_StoresSuccessfulResponse(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	const key = "idempotency:key-1"

	payload, err := json.Marshal(storedResponse{Status: http.StatusCreated, Body: `{"ok":true}`})
	require.NoError(t, err)

	mockRedis.ExpectGet(key).RedisNil()
	mockRedis.ExpectSetNX(key, idempotencyPending, idempotencyLockTTL).SetVal(true)
	mockRedis.ExpectSet(key, payload, idempotencyTTL).SetVal("OK")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rec := httptest.NewRecorder()
	Idempotency(db, zap.NewNop())(next).ServeHTTP(rec, idempotentRequest())

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"ok":true}`, rec.Body.String())
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()

	payload, err := json.Marshal(storedResponse{Status: http.StatusCreated, Body: `{"ok":true}`})
	require.NoError(t, err)
	mockRedis.ExpectGet("idempotency:key-1").SetVal(string(payload))

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := httptest.NewRecorder()
	Idempotency(db, zap.NewNop())(next).ServeHTTP(rec, idempotentRequest())

	assert.False(t, called)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "true", rec.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, `{"ok":true}`, rec.Body.String())
}

func TestIdempotency_InFlight(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	mockRedis.ExpectGet("idempotency:key-1").SetVal(idempotencyPending)

	rec := httptest.NewRecorder()
	Idempotency(db, zap.NewNop())(okHandler).ServeHTTP(rec, idempotentRequest())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(domain.KindConflict), decodeEnvelope(t, rec).Error)
}

func TestIdempotency_ReleasesKeyOnFailure(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	const key = "idempotency:key-1"

	mockRedis.ExpectGet(key).RedisNil()
	mockRedis.ExpectSetNX(key, idempotencyPending, idempotencyLockTTL).SetVal(true)
	mockRedis.ExpectDel(key).SetVal(1)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, zap.NewNop(), domain.ErrConflict("Vehicle is not available"))
	})

	rec := httptest.NewRecorder()
	Idempotency(db, zap.NewNop())(next).ServeHTTP(rec, idempotentRequest())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestIdempotency_WithoutHeader(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()

	rec := httptest.NewRecorder()
	Idempotency(db, zap.NewNop())(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}
