package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
	"github.com/srgjo27/vehicle_rental/internal/core/ports"
	"github.com/srgjo27/vehicle_rental/internal/platform/security"
)

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPasswordResponse carries the raw token only in development.
type ForgotPasswordResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type PasswordResetService struct {
	tx          ports.Transactor
	users       ports.UserRepository
	resets      ports.PasswordResetRepository
	notifier    ports.Notifier
	logger      *zap.Logger
	frontendURL string
	development bool
	now         func() time.Time
}

func NewPasswordResetService(
	tx ports.Transactor,
	users ports.UserRepository,
	resets ports.PasswordResetRepository,
	notifier ports.Notifier,
	logger *zap.Logger,
	frontendURL string,
	development bool,
) *PasswordResetService {
	return &PasswordResetService{
		tx:          tx,
		users:       users,
		resets:      resets,
		notifier:    notifier,
		logger:      logger,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		development: development,
		now:         time.Now,
	}
}

// ForgotPassword issues a new reset token. Earlier live tokens of the user
// stay valid until they expire or are used.
func (s *PasswordResetService) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*ForgotPasswordResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, domain.ErrValidation("Email is required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.ErrNotFound("No account found with this email")
		}
		return nil, err
	}

	now := s.now()

	if err := s.resets.DeleteStale(ctx, user.ID, now); err != nil {
		return nil, err
	}

	raw, err := security.GenerateResetToken()
	if err != nil {
		return nil, err
	}

	token := &domain.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     raw,
		ExpiresAt: now.Add(domain.PasswordResetTTL),
	}

	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/forgot-password?token=%s", s.frontendURL, raw)
	if err := s.notifier.SendPasswordReset(ctx, *user, link); err != nil {
		s.logger.Warn("failed to send password reset email", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	resp := &ForgotPasswordResponse{Message: "Password reset link has been sent to your email"}
	if s.development {
		resp.Token = raw
	}

	return resp, nil
}

func (s *PasswordResetService) VerifyToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrValidation("Invalid or expired reset token")
	}

	now := s.now()
	t, err := s.resets.FindValid(ctx, token, now)
	if err != nil {
		return nil, err
	}
	if !t.Valid(now) {
		return nil, domain.ErrValidation("Invalid or expired reset token")
	}
	return t, nil
}

func (s *PasswordResetService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if req.Token == "" || req.Password == "" {
		return domain.ErrValidation("Token and new password are required")
	}

	if len(req.Password) < minPasswordLength {
		return domain.ErrValidation("Password must be at least 6 characters long")
	}

	token, err := s.VerifyToken(ctx, req.Token)
	if err != nil {
		return err
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return err
	}

	now := s.now()

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.users.UpdatePassword(ctx, token.UserID, hash); err != nil {
			return err
		}

		if err := s.resets.MarkUsed(ctx, token.Token); err != nil {
			return err
		}

		return s.resets.DeleteExpired(ctx, token.UserID, now)
	})
	if err != nil {
		return err
	}

	s.logger.Info("password reset", zap.String("user_id", token.UserID.String()))

	return nil
}
