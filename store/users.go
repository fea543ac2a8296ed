package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"stockmanager/models"
)

// UserRepository is the account half of the persistence contract.
type UserRepository interface {
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (bool, error)
	SaveUser(ctx context.Context, user *models.User) error
	UpdateUserProfile(ctx context.Context, id, fullName, email string) (bool, error)
	UpdateUserPassword(ctx context.Context, id, password string) (bool, error)
	BumpTokenVersion(ctx context.Context, id string) (bool, error)
	DeleteUser(ctx context.Context, id string) error
}

var _ UserRepository = (*Store)(nil)

const userSelect = "SELECT id, username, password, fullName, email, role, created_at, token_version FROM users"

func scanUser(row rowScanner) (models.User, error) {
	var (
		u               models.User
		fullName, email sql.NullString
		role            sql.NullString
		created         timestamp
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &fullName, &email, &role, &created, &u.TokenVersion); err != nil {
		return u, err
	}
	u.FullName = fullName.String
	u.Email = email.String
	u.Role = role.String
	u.CreatedAt = created.Time
	return u, nil
}

func (s *Store) getUser(ctx context.Context, op, where string, arg string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, userSelect+" WHERE "+where+" = ?", arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fault(op, err, zap.String(where, arg))
	}
	return &u, nil
}

// GetAllUsers returns every account in insertion order.
func (s *Store) GetAllUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, userSelect+" ORDER BY rowid")
	if err != nil {
		return nil, s.fault("get all users", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, s.fault("get all users", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fault("get all users", err)
	}
	return users, nil
}

// GetUserByID returns nil, nil when no account has the id.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "get user", "id", id)
}

// GetUserByUsername returns nil, nil when no account has the username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, "get user by username", "username", username)
}

// CreateUser inserts a new account and reports false, without error, when the
// username is already taken. A zero CreatedAt is set to now.
func (s *Store) CreateUser(ctx context.Context, user *models.User) (bool, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password, fullName, email, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(username) DO NOTHING`,
		user.ID, user.Username, user.Password, user.FullName, user.Email, user.Role, user.CreatedAt)
	if err != nil {
		return false, s.fault("create user", err, zap.String("username", user.Username))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, s.fault("create user", err, zap.String("username", user.Username))
	}
	return n > 0, nil
}

// SaveUser inserts the account, or overwrites its mutable fields when the id exists.
func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password, fullName, email, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			password = excluded.password,
			fullName = excluded.fullName,
			email = excluded.email,
			role = excluded.role`,
		user.ID, user.Username, user.Password, user.FullName, user.Email, user.Role, user.CreatedAt)
	if err != nil {
		return s.fault("save user", err, zap.String("id", user.ID))
	}
	return nil
}

// UpdateUserProfile reports false when no row has the id.
func (s *Store) UpdateUserProfile(ctx context.Context, id, fullName, email string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "UPDATE users SET fullName = ?, email = ? WHERE id = ?", fullName, email, id)
	if err != nil {
		return false, s.fault("update user profile", err, zap.String("id", id))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, s.fault("update user profile", err, zap.String("id", id))
	}
	return n > 0, nil
}

// UpdateUserPassword stores an already-encoded password and bumps the token
// version, so earlier tokens stop working. It reports false when no row has the id.
func (s *Store) UpdateUserPassword(ctx context.Context, id, password string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET password = ?, token_version = token_version + 1 WHERE id = ?", password, id)
	if err != nil {
		return false, s.fault("update user password", err, zap.String("id", id))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, s.fault("update user password", err, zap.String("id", id))
	}
	return n > 0, nil
}

// BumpTokenVersion invalidates every token issued so far for the account. It
// reports false when no row has the id.
func (s *Store) BumpTokenVersion(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "UPDATE users SET token_version = token_version + 1 WHERE id = ?", id)
	if err != nil {
		return false, s.fault("bump token version", err, zap.String("id", id))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, s.fault("bump token version", err, zap.String("id", id))
	}
	return n > 0, nil
}

// DeleteUser removes the account; an unknown id is not an error.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
		return s.fault("delete user", err, zap.String("id", id))
	}
	return nil
}
