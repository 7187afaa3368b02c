package services_test

import (
	"context"
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

type resetMocks struct {
	users    *mocks.UserRepository
	resets   *mocks.PasswordResetRepository
	notifier *mocks.Notifier
}

func newResetService(t *testing.T, tx *mocks.Transactor, development bool) (*services.PasswordResetService, resetMocks) {
	m := resetMocks{
		users:    mocks.NewUserRepository(t),
		resets:   mocks.NewPasswordResetRepository(t),
		notifier: mocks.NewNotifier(t),
	}

	service := services.NewPasswordResetService(tx, m.users, m.resets, m.notifier, zap.NewNop(), "http://localhost:5173/", development)

	return service, m
}

func TestForgotPassword(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), FirstName: "Jane", Email: "jane@example.com"}

	t.Run("Development Returns Token", func(t *testing.T) {
		service, m := newResetService(t, mocks.NewTransactor(t), true)

		var issued string
		m.users.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)
		m.resets.On("DeleteStale", ctx, user.ID, mock.AnythingOfType("time.Time")).Return(nil)
		m.resets.On("Create", ctx, mock.MatchedBy(func(tok *domain.PasswordResetToken) bool {
			issued = tok.Token
			ttl := tok.ExpiresAt.Sub(time.Now())
			return tok.UserID == user.ID && ttl > 14*time.Minute && ttl <= domain.PasswordResetTTL
		})).Return(nil)
		m.notifier.On("SendPasswordReset", ctx, *user, mock.MatchedBy(func(link string) bool {
			return strings.HasPrefix(link, "http://localhost:5173/forgot-password?token=")
		})).Return(nil)

		resp, err := service.ForgotPassword(ctx, services.ForgotPasswordRequest{Email: "Jane@example.com"})

		require.NoError(t, err)
		assert.Len(t, resp.Token, 64)
		assert.Equal(t, issued, resp.Token)
	})

	t.Run("Production Hides Token", func(t *testing.T) {
		service, m := newResetService(t, mocks.NewTransactor(t), false)

		m.users.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)
		m.resets.On("DeleteStale", ctx, user.ID, mock.AnythingOfType("time.Time")).Return(nil)
		m.resets.On("Create", ctx, mock.AnythingOfType("*domain.PasswordResetToken")).Return(nil)
		m.notifier.On("SendPasswordReset", ctx, *user, mock.AnythingOfType("string")).Return(nil)

		resp, err := service.ForgotPassword(ctx, services.ForgotPasswordRequest{Email: "jane@example.com"})

		require.NoError(t, err)
		assert.Empty(t, resp.Token)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		service, m := newResetService(t, mocks.NewTransactor(t), false)
		m.users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound("User not found"))

		_, err := service.ForgotPassword(ctx, services.ForgotPasswordRequest{Email: "ghost@example.com"})

		assert.True(t, domain.IsKind(err, domain.KindNotFound))
		assert.Equal(t, "No account found with this email", err.Error())
	})

	t.Run("Missing Email", func(t *testing.T) {
		service, _ := newResetService(t, mocks.NewTransactor(t), false)

		_, err := service.ForgotPassword(ctx, services.ForgotPasswordRequest{})

		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	token := &domain.PasswordResetToken{ID: uuid.New(), UserID: userID, Token: "abc123", ExpiresAt: time.Now().Add(10 * time.Minute)}

	t.Run("Success", func(t *testing.T) {
		service, m := newResetService(t, passthroughTx(t), false)

		m.resets.On("FindValid", ctx, "abc123", mock.AnythingOfType("time.Time")).Return(token, nil)
		m.users.On("UpdatePassword", ctx, userID, mock.MatchedBy(func(hash string) bool {
			return security.CheckPassword(hash, "newpass")
		})).Return(nil)
		m.resets.On("MarkUsed", ctx, "abc123").Return(nil)
		m.resets.On("DeleteExpired", ctx, userID, mock.AnythingOfType("time.Time")).Return(nil)

		err := service.ResetPassword(ctx, services.ResetPasswordRequest{Token: "abc123", Password: "newpass"})

		assert.NoError(t, err)
	})

	t.Run("Short Password", func(t *testing.T) {
		service, _ := newResetService(t, mocks.NewTransactor(t), false)

		err := service.ResetPassword(ctx, services.ResetPasswordRequest{Token: "abc123", Password: "12345"})

		assert.Equal(t, "Password must be at least 6 characters long", err.Error())
	})

	t.Run("Expired Token", func(t *testing.T) {
		service, m := newResetService(t, mocks.NewTransactor(t), false)
		m.resets.On("FindValid", ctx, "abc123", mock.AnythingOfType("time.Time")).
			Return(nil, domain.ErrValidation("Invalid or expired reset token"))

		err := service.ResetPassword(ctx, services.ResetPasswordRequest{Token: "abc123", Password: "newpass"})

		assert.True(t, domain.IsKind(err, domain.KindValidation))
		assert.Equal(t, "Invalid or expired reset token", err.Error())
	})
}

func TestVerifyToken_RejectsConsumedToken(t *testing.T) {
	ctx := context.Background()
	service, m := newResetService(t, mocks.NewTransactor(t), false)

	consumed := &domain.PasswordResetToken{Token: "abc123", ExpiresAt: time.Now().Add(10 * time.Minute), Used: true}
	m.resets.On("FindValid", ctx, "abc123", mock.AnythingOfType("time.Time")).Return(consumed, nil)

	token, err := service.VerifyToken(ctx, "abc123")

	assert.Nil(t, token)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
	assert.Equal(t, "Invalid or expired reset token", err.Error())
}

func TestTokenSweeper_RunsUntilCancelled(t *testing.T) {
	resets := mocks.NewPasswordResetRepository(t)
	sweeper := services.NewTokenSweeper(resets, 5*time.Millisecond, zap.NewNop())

	swept := make(chan struct{}, 1)
	resets.On("Sweep", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(2), nil).Run(func(mock.Arguments) {
		select {
		case swept <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.RunBackgroundCleanup(ctx)
		close(done)
	}()

	select {
	case <-swept:
	case <-time.After(time.Second):
		t.Fatal("sweeper never ran")
	}

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
