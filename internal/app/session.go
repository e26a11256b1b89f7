// Package app holds the session, screen, and navigation core: it tracks the
// authenticated principal and the screen history, dispatches transitions, and
// emits declarative view models to a pluggable renderer.
package app

import (
	"spendbook/internal/models"
	"spendbook/internal/services"
)

// Principal is the authenticated identity associated with the session.
type Principal struct {
	UserID   uint
	Role     models.Role
	Fullname string
}

// Session is the process-lifetime authentication state. It is an explicit
// object owned by the Controller, never package-global, and holds nothing
// that survives a restart.
type Session struct {
	id        string
	principal *Principal
}

// NewSession returns an unauthenticated session.
func NewSession() *Session {
	return &Session{}
}

// SignIn binds the principal to the session and assigns a fresh session id
// used for log correlation.
func (s *Session) SignIn(p Principal) {
	s.principal = &p
	s.id = newSessionID()
}

// SignOut clears the principal and the session id.
func (s *Session) SignOut() {
	s.principal = nil
	s.id = ""
}

// Principal returns the authenticated principal, or nil.
func (s *Session) Principal() *Principal {
	return s.principal
}

// ID returns the current session id, empty when signed out.
func (s *Session) ID() string {
	return s.id
}

// Actor projects the principal into the service layer's authorization
// contract. Nil when unauthenticated.
func (s *Session) Actor() *services.Actor {
	if s.principal == nil {
		return nil
	}
	return &services.Actor{ID: s.principal.UserID, Role: s.principal.Role}
}
