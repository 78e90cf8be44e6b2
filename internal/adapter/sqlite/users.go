package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/neomorfeo/bookmart/internal/domain"
)

const userColumns = `id, username, email, first_name, last_name, role, password_hash, created_at`

func (s *Store) CreateUser(ctx context.Context, u domain.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, string(u.Role), u.PasswordHash,
		formatTime(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return userConflict(err, u)
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id,
	))
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username,
	))
}

func scanUser(row scanner) (domain.User, error) {
	var u domain.User
	var role, createdAt string

	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &role, &u.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("scanning user: %w", err)
	}

	if u.Role = domain.Role(role); !u.Role.Valid() {
		return domain.User{}, fmt.Errorf("user %s: unknown role %q", u.ID, role)
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.User{}, fmt.Errorf("user %s created_at: %w", u.ID, err)
	}
	return u, nil
}

// userConflict names the column a UNIQUE violation was raised on.
func userConflict(err error, u domain.User) error {
	if strings.Contains(err.Error(), "users.email") {
		return &domain.UserConflictError{Field: "email", Value: u.Email}
	}
	return &domain.UserConflictError{Field: "username", Value: u.Username}
}
