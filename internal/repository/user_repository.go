package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/model"
)

// UserRepository provides data access methods for the user table.
type UserRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a new UserRepository scoped to the provided transaction.
func (r *UserRepository) WithTx(tx *sql.Tx) *UserRepository {
	return &UserRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *UserRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const userColumns = `id, username, password, name, email, created_at`

// GetUsers retrieves all users ordered by username.
// Returns an empty slice if there are no users.
func (r *UserRepository) GetUsers(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" ORDER BY username ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query user table: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user table results: %w", err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user table: %w", err)
	}

	return users, nil
}

// GetUser retrieves a user by id. Returns ErrUserNotFound if it does not exist.
func (r *UserRepository) GetUser(ctx context.Context, userID string) (model.User, error) {
	return r.getUserWhere(ctx, "id = ?", userID)
}

// GetUserByUsername retrieves a user by exact username. Returns ErrUserNotFound if it does not exist.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	return r.getUserWhere(ctx, "username = ?", username)
}

func (r *UserRepository) getUserWhere(ctx context.Context, where string, arg string) (model.User, error) {
	//#nosec G202 -- Safe: where clause is one of the constants above
	query := `SELECT ` + userColumns + ` FROM "user" WHERE ` + where

	u, err := scanUser(r.getQuerier().QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

// ExistsByUsername reports whether any user owns username.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM "user" WHERE username = ?)`, username)
}

// ExistsByEmail reports whether any user owns email.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM "user" WHERE email = ?)`, email)
}

func (r *UserRepository) exists(ctx context.Context, query, arg string) (bool, error) {
	var found bool
	if err := r.getQuerier().QueryRowContext(ctx, query, arg).Scan(&found); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return found, nil
}

// InsertUser inserts u. A username or email already owned by another row
// returns ErrUsernameTaken or ErrEmailInUse.
func (r *UserRepository) InsertUser(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO "user" (id, username, password, name, email, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		u.ID,
		u.Username,
		u.Password,
		u.Name,
		u.Email,
		formatTimestamp(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return userConflict(err)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// UpdateUser writes every mutable column of u. Returns ErrUserNotFound if no row has u.ID.
func (r *UserRepository) UpdateUser(ctx context.Context, u *model.User) error {
	query := `
		UPDATE "user"
		SET username = ?, password = ?, name = ?, email = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		u.Username,
		u.Password,
		u.Name,
		u.Email,
		u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return userConflict(err)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return ensureAffected(result, apperrors.ErrUserNotFound)
}

// DeleteUser removes the user and, through ON DELETE CASCADE, everything it owns.
// Deleting an absent id is not an error.
func (r *UserRepository) DeleteUser(ctx context.Context, userID string) error {
	if _, err := r.getQuerier().ExecContext(ctx, `DELETE FROM "user" WHERE id = ?`, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	var createdAtStr string

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Password,
		&u.Name,
		&u.Email,
		&createdAtStr,
	)
	if err != nil {
		return model.User{}, err
	}

	u.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.User{}, err
	}

	return u, nil
}

// userConflict maps a UNIQUE violation on the user table to the matching conflict error.
func userConflict(err error) error {
	if strings.Contains(err.Error(), "email") {
		return apperrors.ErrEmailInUse
	}
	return apperrors.ErrUsernameTaken
}
