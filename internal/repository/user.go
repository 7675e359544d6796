package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gigvora/gigvora-backend/internal/models"
)

// GetUserByID returns the user with the given id, or (nil, nil) when no such
// record exists. Soft-deleted rows are not returned.
func (r *SQLiteRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	query := `SELECT * FROM users WHERE id = ? AND deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserByEmail returns the user with the given email, or (nil, nil).
func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := `SELECT * FROM users WHERE email = ? AND deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a new user record.
func (r *SQLiteRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	query := `
		INSERT INTO users (id, email, password_hash, role, first_name, last_name, created_at, updated_at)
		VALUES (:id, :email, :password_hash, :role, :first_name, :last_name, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// DeactivateUser marks the account inactive; its tokens stop resolving.
func (r *SQLiteRepository) DeactivateUser(ctx context.Context, id string) error {
	query := `UPDATE users SET deactivated_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, query, now, now, id); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return nil
}

// EnsureAdminUser seeds an admin account if no user with the email exists.
// Used at startup when bootstrap credentials are configured.
func (r *SQLiteRepository) EnsureAdminUser(ctx context.Context, email, password string) (*models.User, error) {
	existing, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
		FirstName:    "Admin",
	}
	if err := r.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
