package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
	"github.com/srgjo27/vehicle_rental/internal/core/ports/mocks"
	"github.com/srgjo27/vehicle_rental/internal/core/services"
	"github.com/srgjo27/vehicle_rental/internal/platform/security"
)

type testApp struct {
	router   http.Handler
	issuer   *security.TokenIssuer
	users    *mocks.UserRepository
	vehicles *mocks.VehicleRepository
	bookings *mocks.BookingRepository
}

func newTestApp(t *testing.T) *testApp {
	logger := zap.NewNop()

	tx := mocks.NewTransactor(t)
	users := mocks.NewUserRepository(t)
	specs := mocks.NewVehicleSpecRepository(t)
	vehicles := mocks.NewVehicleRepository(t)
	bookings := mocks.NewBookingRepository(t)
	payments := mocks.NewPaymentRepository(t)
	resets := mocks.NewPasswordResetRepository(t)
	tickets := mocks.NewSupportTicketRepository(t)
	notifier := mocks.NewNotifier(t)
	issuer := security.NewTokenIssuer("test-secret", time.Hour)

	authSvc := services.NewAuthService(users, issuer, notifier, nil, logger)
	resetSvc := services.NewPasswordResetService(tx, users, resets, notifier, logger, "http://localhost:5173", false)
	bookingSvc := services.NewBookingService(tx, bookings, vehicles, payments, notifier, nil, logger)
	paymentSvc := services.NewPaymentService(payments, bookings)
	supportSvc := services.NewSupportService(tx, tickets, notifier, logger)

	router := NewRouter(RouterDeps{
		Auth:     NewAuthHandler(authSvc, resetSvc, logger),
		Bookings: NewBookingHandler(bookingSvc, logger),
		Vehicles: NewVehicleHandler(services.NewVehicleService(vehicles, specs, nil, logger), services.NewVehicleSpecService(specs, nil, logger), logger),
		Payments: NewPaymentHandler(paymentSvc, logger),
		Users:    NewUserHandler(services.NewUserService(users), logger),
		Support:  NewSupportHandler(supportSvc, logger),

		Authenticator: authSvc,
		Owners: Owners{
			Booking: bookingSvc.BookingOwner,
			Payment: paymentSvc.PaymentOwner,
			Ticket:  supportSvc.TicketOwner,
		},
		AllowedOrigins: []string{"http://localhost:5173"},
		RateLimit:      RateLimitConfig{Requests: 100, Window: time.Hour},
		Logger:         logger,
	})

	return &testApp{router: router, issuer: issuer, users: users, vehicles: vehicles, bookings: bookings}
}

func (a *testApp) token(t *testing.T, id uuid.UUID, role domain.Role) string {
	t.Helper()
	token, err := a.issuer.Issue(&domain.User{ID: id, FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Role: role})
	require.NoError(t, err)
	return token
}

func (a *testApp) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
}

func TestRouter_CORSPreflight(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type, Idempotency-Key")

	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestRouter_CORSUnknownOrigin(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")

	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_PublicVehicleNotFound(t *testing.T) {
	app := newTestApp(t)
	id := uuid.New()

	app.vehicles.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound("Vehicle not found"))

	rec := app.do(http.MethodGet, "/api/vehicles/"+id.String(), "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Vehicle not found", body.Message)
	assert.Equal(t, string(domain.KindNotFound), body.Error)
}

func TestRouter_MalformedID(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/vehicles/not-a-uuid", "", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid id", decodeEnvelope(t, rec).Message)
}

func TestRouter_AdminRoutes(t *testing.T) {
	app := newTestApp(t)
	path := "/api/vehicles/" + uuid.NewString()

	rec := app.do(http.MethodDelete, path, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodDelete, path, "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodDelete, path, app.token(t, uuid.New(), domain.RoleUser), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_CancelIsOwnerOnly(t *testing.T) {
	app := newTestApp(t)
	bookingID := uuid.New()

	app.bookings.On("GetByID", mock.Anything, bookingID).Return(&domain.BookingView{
		Booking: domain.Booking{ID: bookingID, UserID: uuid.New()},
	}, nil)

	admin := app.token(t, uuid.New(), domain.RoleAdmin)
	rec := app.do(http.MethodPatch, "/api/bookings/"+bookingID.String()+"/cancel", admin, `{"cancellation_reason":"plans changed"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You can only cancel your own bookings", decodeEnvelope(t, rec).Message)
}

func TestRouter_CancelChecksReasonFirst(t *testing.T) {
	app := newTestApp(t)
	user := app.token(t, uuid.New(), domain.RoleUser)

	t.Run("blank reason", func(t *testing.T) {
		rec := app.do(http.MethodPatch, "/api/bookings/"+uuid.NewString()+"/cancel", user, `{"cancellation_reason":"   "}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Cancellation reason is required", decodeEnvelope(t, rec).Message)
	})

	t.Run("missing field", func(t *testing.T) {
		rec := app.do(http.MethodPatch, "/api/bookings/"+uuid.NewString()+"/cancel", user, `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Cancellation reason is required", decodeEnvelope(t, rec).Message)
	})

	app.bookings.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestRouter_CancelUnknownBooking(t *testing.T) {
	app := newTestApp(t)
	bookingID := uuid.New()

	app.bookings.On("GetByID", mock.Anything, bookingID).Return(nil, domain.ErrNotFound("Booking not found"))

	user := app.token(t, uuid.New(), domain.RoleUser)
	rec := app.do(http.MethodPatch, "/api/bookings/"+bookingID.String()+"/cancel", user, `{"cancellation_reason":"plans changed"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Booking not found", decodeEnvelope(t, rec).Message)
}

func TestRouter_UserProfileIsSelfOrAdmin(t *testing.T) {
	app := newTestApp(t)
	self := uuid.New()

	app.users.On("GetByID", mock.Anything, self).Return(&domain.User{ID: self, Email: "jane@example.com", Role: domain.RoleUser}, nil)

	token := app.token(t, self, domain.RoleUser)

	rec := app.do(http.MethodGet, "/api/users/"+self.String(), token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"jane@example.com"`)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = app.do(http.MethodGet, "/api/users/"+uuid.NewString(), token, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_CreateBookingValidation(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/api/bookings", app.token(t, uuid.New(), domain.RoleUser), `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "vehicle_id is required", decodeEnvelope(t, rec).Message)
}

func TestRouter_LoginRejectsBadJSON(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/api/auth/login", "", `{"email":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON body", decodeEnvelope(t, rec).Message)
}

func TestRouter_CreateSpecValidation(t *testing.T) {
	app := newTestApp(t)

	admin := app.token(t, uuid.New(), domain.RoleAdmin)
	rec := app.do(http.MethodPost, "/api/vehicle-specs", admin, `{"manufacturer":"Toyota","model":"Corolla"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "year is required", decodeEnvelope(t, rec).Message)
}
