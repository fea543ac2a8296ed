package auth

import "stockmanager/models"

// Session holds the authenticated user for one caller. It is passed
// explicitly to the operations that act on the current user.
type Session struct {
	user *models.User
}

// NewSession starts a session, logged in when user is non-nil.
func NewSession(user *models.User) *Session {
	return &Session{user: user}
}

// User returns the logged-in user or nil.
func (s *Session) User() *models.User {
	if s == nil {
		return nil
	}
	return s.user
}

func (s *Session) LoggedIn() bool { return s.User() != nil }

func (s *Session) IsAdmin() bool { return s.User().IsAdmin() }

// Logout clears the session.
func (s *Session) Logout() {
	if s != nil {
		s.user = nil
	}
}
