package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/srgjo27/vehicle_rental/internal/adapter/handler"
	"github.com/srgjo27/vehicle_rental/internal/adapter/notifier"
	"github.com/srgjo27/vehicle_rental/internal/adapter/repository/postgres"
	"github.com/srgjo27/vehicle_rental/internal/config"
	"github.com/srgjo27/vehicle_rental/internal/core/services"
	"github.com/srgjo27/vehicle_rental/internal/platform/cache"
	"github.com/srgjo27/vehicle_rental/internal/platform/database"
	"github.com/srgjo27/vehicle_rental/internal/platform/logger"
	"github.com/srgjo27/vehicle_rental/internal/platform/security"
)

func main() {
	cfg, err := config.New("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}, zlog)
	if err != nil {
		zlog.Fatal("Failed to connect to db after retries", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		zlog.Fatal("Failed to apply schema", zap.Error(err))
	}

	zlog.Info("Connecting to Redis", zap.String("addr", cfg.Redis.Addr))
	redisClient, err := cache.NewRedisClient(ctx, cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		zlog.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	transport, closeTransport := newMailTransport(cfg, zlog)
	defer closeTransport()
	mailer := notifier.NewAsync(notifier.New(transport), zlog)

	txManager := postgres.NewTxManager(db)
	userRepo := postgres.NewUserRepository(db)
	specRepo := postgres.NewVehicleSpecRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	resetRepo := postgres.NewPasswordResetRepository(db)
	ticketRepo := postgres.NewSupportTicketRepository(db)

	issuer := security.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)

	authService := services.NewAuthService(userRepo, issuer, mailer, redisClient, zlog)
	resetService := services.NewPasswordResetService(txManager, userRepo, resetRepo, mailer, zlog, cfg.Mail.FrontendURL, cfg.App.IsDevelopment())
	bookingService := services.NewBookingService(txManager, bookingRepo, vehicleRepo, paymentRepo, mailer, redisClient, zlog)
	vehicleService := services.NewVehicleService(vehicleRepo, specRepo, redisClient, zlog)
	specService := services.NewVehicleSpecService(specRepo, redisClient, zlog)
	paymentService := services.NewPaymentService(paymentRepo, bookingRepo)
	userService := services.NewUserService(userRepo)
	supportService := services.NewSupportService(txManager, ticketRepo, mailer, zlog)

	sweeper := services.NewTokenSweeper(resetRepo, cfg.Cleanup.Interval, zlog)
	go sweeper.RunBackgroundCleanup(ctx)

	router := handler.NewRouter(handler.RouterDeps{
		Auth:     handler.NewAuthHandler(authService, resetService, zlog),
		Bookings: handler.NewBookingHandler(bookingService, zlog),
		Vehicles: handler.NewVehicleHandler(vehicleService, specService, zlog),
		Payments: handler.NewPaymentHandler(paymentService, zlog),
		Users:    handler.NewUserHandler(userService, zlog),
		Support:  handler.NewSupportHandler(supportService, zlog),

		Authenticator: authService,
		Owners: handler.Owners{
			Booking: bookingService.BookingOwner,
			Payment: paymentService.PaymentOwner,
			Ticket:  supportService.TicketOwner,
		},
		Redis:          redisClient,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		RateLimit: handler.RateLimitConfig{
			Requests: cfg.RateLimit.Requests,
			Window:   cfg.RateLimit.Window,
		},
		Logger: zlog,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		zlog.Info("Server starting", zap.String("addr", server.Addr), zap.String("env", cfg.App.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Server startup failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
	}

	mailer.Wait()
	zlog.Info("Server exiting")
}

// newMailTransport picks the delivery backend from MAIL_DRIVER.
func newMailTransport(cfg *config.Config, zlog *zap.Logger) (notifier.Transport, func()) {
	switch cfg.Mail.Driver {
	case "smtp":
		t, err := notifier.NewSMTPTransport(notifier.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		})
		if err != nil {
			zlog.Fatal("Failed to configure SMTP", zap.Error(err))
		}
		return t, func() {}
	case "kafka":
		t := notifier.NewKafkaTransport(notifier.KafkaConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		return t, func() {
			if err := t.Close(); err != nil {
				zlog.Warn("Failed to close kafka writer", zap.Error(err))
			}
		}
	default:
		if cfg.Mail.Driver != "log" {
			zlog.Warn("Unknown mail driver, logging emails instead", zap.String("driver", cfg.Mail.Driver))
		}
		return notifier.NewLogTransport(zlog), func() {}
	}
}
