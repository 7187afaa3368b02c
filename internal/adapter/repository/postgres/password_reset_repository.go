package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
)

type PasswordResetRepository struct {
	db *sql.DB
}

func NewPasswordResetRepository(db *sql.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

func (r *PasswordResetRepository) Create(ctx context.Context, token *domain.PasswordResetToken) error {
	query := `
	INSERT INTO password_reset_tokens (id, user_id, token, expires_at, used)
	VALUES ($1, $2, $3, $4, FALSE)
	RETURNING created_at
	`

	err := conn(ctx, r.db).QueryRowContext(ctx, query,
		token.ID, token.UserID, token.Token, token.ExpiresAt,
	).Scan(&token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert reset token: %w", err)
	}

	return nil
}

func (r *PasswordResetRepository) FindValid(ctx context.Context, token string, now time.Time) (*domain.PasswordResetToken, error) {
	query := `
	SELECT id, user_id, token, expires_at, used, created_at
	FROM password_reset_tokens
	WHERE token = $1 AND used = FALSE AND expires_at > $2
	`

	var t domain.PasswordResetToken
	err := conn(ctx, r.db).QueryRowContext(ctx, query, token, now).Scan(
		&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.Used, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrValidation("Invalid or expired reset token")
		}
		return nil, fmt.Errorf("failed to find reset token: %w", err)
	}

	return &t, nil
}

// MarkUsed flags the token as consumed. Only a still unused token can be
// consumed, so two concurrent resets cannot both succeed.
func (r *PasswordResetRepository) MarkUsed(ctx context.Context, token string) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE password_reset_tokens SET used = TRUE WHERE token = $1 AND used = FALSE`, token)
	if err != nil {
		return fmt.Errorf("failed to mark reset token used: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.ErrValidation("Invalid or expired reset token")
	}

	return nil
}

func (r *PasswordResetRepository) DeleteStale(ctx context.Context, userID uuid.UUID, now time.Time) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM password_reset_tokens WHERE user_id = $1 AND (used = TRUE OR expires_at < $2)`, userID, now)
	if err != nil {
		return fmt.Errorf("failed to delete stale reset tokens: %w", err)
	}

	return nil
}

func (r *PasswordResetRepository) DeleteExpired(ctx context.Context, userID uuid.UUID, now time.Time) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM password_reset_tokens WHERE user_id = $1 AND expires_at < $2`, userID, now)
	if err != nil {
		return fmt.Errorf("failed to delete expired reset tokens: %w", err)
	}

	return nil
}

func (r *PasswordResetRepository) Sweep(ctx context.Context, now time.Time) (int64, error) {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM password_reset_tokens WHERE used = TRUE OR expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep reset tokens: %w", err)
	}

	return res.RowsAffected()
}
