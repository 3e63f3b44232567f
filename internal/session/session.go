// Package session holds the client-side view of an authenticated session: at
// most one active bearer token, plus an optional saved prior token while an
// impersonation is in progress. It replaces ambient browser-storage style
// state with a value that is passed around explicitly.
package session

import "errors"

var (
	// ErrNotImpersonating is returned when ending an impersonation that was never started.
	ErrNotImpersonating = errors.New("no impersonation in progress")
	// ErrAlreadyImpersonating is returned when starting a second impersonation without ending the first.
	ErrAlreadyImpersonating = errors.New("impersonation already in progress")
)

// Session tracks the caller's current credential. The zero value is a
// logged-out session.
type Session struct {
	active string
	saved  string
}

// Use replaces the active token, discarding any impersonation state. This is
// the normal login path.
func (s *Session) Use(token string) {
	s.active = token
	s.saved = ""
}

// Token returns the token to attach to outgoing requests, or "" when logged out.
func (s *Session) Token() string {
	return s.active
}

// Authenticated reports whether the session holds a credential.
func (s *Session) Authenticated() bool {
	return s.active != ""
}

// Impersonating reports whether the session is currently using an assumed identity.
func (s *Session) Impersonating() bool {
	return s.saved != ""
}

// BeginImpersonation swaps the active token for an impersonation token,
// saving the caller's own token for restoration on exit. Nested
// impersonation is rejected; the saved slot holds exactly one token.
func (s *Session) BeginImpersonation(impersonationToken string) error {
	if s.active == "" {
		return errors.New("cannot impersonate from a logged-out session")
	}
	if s.saved != "" {
		return ErrAlreadyImpersonating
	}
	s.saved = s.active
	s.active = impersonationToken
	return nil
}

// EndImpersonation discards the impersonation token and restores the saved
// token. The server keeps no record of the swap; this is the entire exit
// mechanism.
func (s *Session) EndImpersonation() error {
	if s.saved == "" {
		return ErrNotImpersonating
	}
	s.active = s.saved
	s.saved = ""
	return nil
}

// Clear logs the session out, dropping both tokens.
func (s *Session) Clear() {
	s.active = ""
	s.saved = ""
}
