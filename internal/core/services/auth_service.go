package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
	"github.com/srgjo27/vehicle_rental/internal/core/ports"
	"github.com/srgjo27/vehicle_rental/internal/platform/security"
)

const minPasswordLength = 6

type RegisterRequest struct {
	FirstName    string  `json:"first_name" validate:"required"`
	LastName     string  `json:"last_name" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required"`
	ContactPhone *string `json:"contact_phone"`
	Address      *string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      *domain.User `json:"user"`
}

type AuthService struct {
	users    ports.UserRepository
	tokens   *security.TokenIssuer
	notifier ports.Notifier
	cache    *redis.Client
	logger   *zap.Logger
}

func NewAuthService(users ports.UserRepository, tokens *security.TokenIssuer, notifier ports.Notifier, cache *redis.Client, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		notifier: notifier,
		cache:    cache,
		logger:   logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, domain.ErrValidation("First name, last name, email and password are required")
	}

	if len(req.Password) < minPasswordLength {
		return nil, domain.ErrValidation("Password must be at least 6 characters long")
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
		Role:         domain.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))

	if err := s.notifier.SendWelcome(ctx, *user); err != nil {
		s.logger.Warn("failed to send welcome email", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.ErrValidation("Invalid email or password")
		}
		return nil, err
	}

	if !security.CheckPassword(user.PasswordHash, req.Password) {
		return nil, domain.ErrValidation("Invalid email or password")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
		User:      user,
	}, nil
}

func (s *AuthService) Me(ctx context.Context, caller domain.Principal) (*domain.User, error) {
	return s.users.GetByID(ctx, caller.UserID)
}

// Authenticate parses a bearer token and rejects revoked ones.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Principal, *security.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Principal{}, nil, domain.ErrAuthRequired("Invalid or expired token")
	}

	if s.isRevoked(ctx, claims.ID) {
		return domain.Principal{}, nil, domain.ErrAuthRequired("Token has been revoked")
	}

	principal, err := claims.Principal()
	if err != nil {
		return domain.Principal{}, nil, domain.ErrAuthRequired("Invalid or expired token")
	}

	return principal, claims, nil
}

// Logout revokes the token id until the token would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *security.Claims) error {
	if s.cache == nil || claims == nil || claims.ID == "" {
		return nil
	}

	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.cache.Set(ctx, revokedKey(claims.ID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}

// isRevoked fails open when Redis is unreachable.
func (s *AuthService) isRevoked(ctx context.Context, jti string) bool {
	if s.cache == nil || jti == "" {
		return false
	}

	err := s.cache.Get(ctx, revokedKey(jti)).Err()
	if err == nil {
		return true
	}
	if !errors.Is(err, redis.Nil) {
		s.logger.Warn("failed to check token revocation", zap.Error(err))
	}

	return false
}

func revokedKey(jti string) string {
	return "revoked:" + jti
}
