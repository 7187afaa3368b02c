package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Owners resolves the owning user of a record for route-level authorization.
type Owners struct {
	Booking OwnerLookup
	Payment OwnerLookup
	Ticket  OwnerLookup
}

type RouterDeps struct {
	Auth     *AuthHandler
	Bookings *BookingHandler
	Vehicles *VehicleHandler
	Payments *PaymentHandler
	Users    *UserHandler
	Support  *SupportHandler

	Authenticator  Authenticator
	Owners         Owners
	Redis          *redis.Client
	AllowedOrigins []string
	RateLimit      RateLimitConfig
	Logger         *zap.Logger
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(RequestLogger(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Requested-With", idempotencyHeader},
		ExposedHeaders:   []string{"X-Idempotency-Replayed", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, envelope{Success: true, Message: "OK"})
	})
	r.Handle("/metrics", promhttp.Handler())

	authn := Authenticate(d.Authenticator, d.Logger)
	admin := AdminOnly(d.Logger)
	limited := RateLimit(d.Redis, d.RateLimit.Requests, d.RateLimit.Window, d.Logger)
	idempotent := Idempotency(d.Redis, d.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(limited).Post("/register", d.Auth.Register)
			r.With(limited).Post("/login", d.Auth.Login)
			r.With(limited).Post("/forgot-password", d.Auth.ForgotPassword)
			r.Get("/verify-reset-token/{token}", d.Auth.VerifyResetToken)
			r.With(limited).Post("/reset-password", d.Auth.ResetPassword)
			r.With(authn).Get("/me", d.Auth.Me)
			r.With(authn).Post("/logout", d.Auth.Logout)
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", d.Vehicles.ListVehicles)
			r.Get("/{id}", d.Vehicles.GetVehicle)
			r.With(authn, admin).Post("/", d.Vehicles.CreateVehicle)
			r.With(authn, admin).Put("/{id}", d.Vehicles.UpdateVehicle)
			r.With(authn, admin).Delete("/{id}", d.Vehicles.DeleteVehicle)
		})

		r.Route("/vehicle-specs", func(r chi.Router) {
			r.Get("/", d.Vehicles.ListSpecs)
			r.Get("/{id}", d.Vehicles.GetSpec)
			r.With(authn, admin).Post("/", d.Vehicles.CreateSpec)
			r.With(authn, admin).Put("/{id}", d.Vehicles.UpdateSpec)
			r.With(authn, admin).Delete("/{id}", d.Vehicles.DeleteSpec)
		})

		r.Group(func(r chi.Router) {
			r.Use(authn)

			r.Route("/bookings", func(r chi.Router) {
				r.Get("/", d.Bookings.ListBookings)
				r.With(idempotent).Post("/", d.Bookings.CreateBooking)
				r.With(Authorize(d.Owners.Booking, d.Logger)).Get("/{id}", d.Bookings.GetBooking)
				r.With(admin).Put("/{id}", d.Bookings.UpdateBooking)
				r.With(admin).Delete("/{id}", d.Bookings.DeleteBooking)
				r.Patch("/{id}/cancel", d.Bookings.CancelBooking)
			})

			r.Route("/payments", func(r chi.Router) {
				r.With(admin).Get("/", d.Payments.ListPayments)
				r.With(idempotent).Post("/", d.Payments.CreatePayment)
				r.With(Authorize(d.Owners.Payment, d.Logger)).Get("/{id}", d.Payments.GetPayment)
				r.With(admin).Put("/{id}", d.Payments.UpdatePayment)
				r.With(admin).Delete("/{id}", d.Payments.DeletePayment)
			})

			r.Route("/users", func(r chi.Router) {
				self := Authorize(SelfLookup, d.Logger)

				r.With(admin).Get("/", d.Users.ListUsers)
				r.With(self).Get("/{id}", d.Users.GetUser)
				r.With(self).Put("/{id}", d.Users.UpdateUser)
				r.With(admin).Patch("/{id}/role", d.Users.UpdateRole)
				r.With(admin).Delete("/{id}", d.Users.DeleteUser)
			})

			r.Route("/support-tickets", func(r chi.Router) {
				owner := Authorize(d.Owners.Ticket, d.Logger)

				r.Get("/", d.Support.ListTickets)
				r.Post("/", d.Support.CreateTicket)
				r.With(owner).Get("/{id}", d.Support.GetTicket)
				r.With(admin).Put("/{id}", d.Support.UpdateTicket)
				r.With(admin).Delete("/{id}", d.Support.DeleteTicket)
				r.With(owner).Post("/{id}/replies", d.Support.AddReply)
				r.With(admin).Patch("/{id}/status", d.Support.UpdateStatus)
			})
		})
	})

	return r
}
