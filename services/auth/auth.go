// Package auth checks credentials and manages the current user's session.
package auth

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"stockmanager/models"
	"stockmanager/store"
)

// Service authenticates users against the user repository.
type Service struct {
	users  store.UserRepository
	creds  Credentials
	logger *zap.Logger
}

// NewService wires the service. A nil creds falls back to PlainCredentials.
func NewService(users store.UserRepository, creds Credentials, logger *zap.Logger) *Service {
	if creds == nil {
		creds = PlainCredentials{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, creds: creds, logger: logger}
}

// Credentials exposes the configured scheme, e.g. for seeding.
func (s *Service) Credentials() Credentials {
	return s.creds
}

// Login looks the user up by username and verifies the password. On success
// the session is switched to that user. Wrong credentials return nil, nil and
// leave the session untouched.
func (s *Service) Login(ctx context.Context, sess *Session, username, password string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil || !s.creds.Verify(user.Password, password) {
		s.logger.Info("login rejected", zap.String("username", username))
		return nil, nil
	}

	sess.user = user
	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return user, nil
}

// Register creates a "user"-role account and logs the session into it. It
// returns nil, nil when the username is already taken.
func (s *Service) Register(ctx context.Context, sess *Session, username, password, fullName, email string) (*models.User, error) {
	stored, err := s.creds.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user := &models.User{
		ID:        models.NewUserID(),
		Username:  username,
		Password:  stored,
		FullName:  fullName,
		Email:     email,
		Role:      models.RoleUser,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if !created {
		s.logger.Info("registration rejected, username taken", zap.String("username", username))
		return nil, nil
	}

	sess.user = user
	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Logout ends the session and revokes every token issued to the user so far.
// The session is cleared even when revocation fails.
func (s *Service) Logout(ctx context.Context, sess *Session) error {
	defer sess.Logout()

	u := sess.User()
	if u == nil {
		return nil
	}
	if _, err := s.users.BumpTokenVersion(ctx, u.ID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.Info("user logged out", zap.String("user_id", u.ID))
	return nil
}

// UpdateProfile changes the current user's name and email. It returns false
// when nobody is logged in or the row no longer exists.
func (s *Service) UpdateProfile(ctx context.Context, sess *Session, fullName, email string) (bool, error) {
	user := sess.User()
	if user == nil {
		return false, nil
	}

	ok, err := s.users.UpdateUserProfile(ctx, user.ID, fullName, email)
	if err != nil {
		return false, fmt.Errorf("update profile: %w", err)
	}
	if ok {
		user.FullName = fullName
		user.Email = email
	}
	return ok, nil
}

// ChangePassword replaces the current user's password. It fails closed,
// returning false, when nobody is logged in or oldPassword does not match the
// password held in the session.
func (s *Service) ChangePassword(ctx context.Context, sess *Session, oldPassword, newPassword string) (bool, error) {
	user := sess.User()
	if user == nil || !s.creds.Verify(user.Password, oldPassword) {
		return false, nil
	}

	stored, err := s.creds.Hash(newPassword)
	if err != nil {
		return false, fmt.Errorf("change password: %w", err)
	}

	ok, err := s.users.UpdateUserPassword(ctx, user.ID, stored)
	if err != nil {
		return false, fmt.Errorf("change password: %w", err)
	}
	if ok {
		user.Password = stored
		user.TokenVersion++
		s.logger.Info("password changed", zap.String("user_id", user.ID))
	}
	return ok, nil
}

// Resume rebuilds a session from the user id and token version a token
// carries. It returns nil, nil when the account no longer exists or the token
// was revoked by a later logout or password change.
func (s *Service) Resume(ctx context.Context, userID string, version int) (*Session, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resume session: %w", err)
	}
	if user == nil || user.TokenVersion != version {
		return nil, nil
	}
	return NewSession(user), nil
}
