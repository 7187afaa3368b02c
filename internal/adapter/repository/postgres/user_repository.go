package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `user_id, first_name, last_name, email, password, contact_phone, address, role, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	var phone, address sql.NullString

	if err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&phone,
		&address,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}

	u.ContactPhone = nullString(phone)
	u.Address = nullString(address)

	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
	INSERT INTO users (user_id, first_name, last_name, email, password, contact_phone, address, role)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`

	err := conn(ctx, r.db).QueryRowContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.ContactPhone, user.Address, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if pqCode(err) == uniqueViolation {
			return domain.ErrConflict("Email already exists")
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	user, err := scanUser(conn(ctx, r.db).QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound("User not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	user, err := scanUser(conn(ctx, r.db).QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound("User not found")
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}

		users = append(users, *user)
	}

	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
	UPDATE users
	SET first_name = $1,
		last_name = $2,
		email = $3,
		contact_phone = $4,
		address = $5,
		updated_at = NOW()
	WHERE user_id = $6
	`

	res, err := conn(ctx, r.db).ExecContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.ContactPhone, user.Address, user.ID)
	if err != nil {
		if pqCode(err) == uniqueViolation {
			return domain.ErrConflict("Email already exists")
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return affected(res, "User not found")
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID uuid.UUID, role domain.Role) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE users SET role = $1, updated_at = NOW() WHERE user_id = $2`, role, userID)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}

	return affected(res, "User not found")
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE users SET password = $1, updated_at = NOW() WHERE user_id = $2`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return affected(res, "User not found")
}

func (r *UserRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.ErrConflict("User still has bookings or support tickets")
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return affected(res, "User not found")
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
