package domain

// Session is one live connection from one client. A user may hold several
// concurrent sessions (multi-tab, multi-device).
type Session struct {
	SessionID string

	userID      string
	userIDBound bool
	isAnonymous bool
}

// NewSession creates an unauthenticated session. BindUser upgrades it once
// the auth collaborator has validated a handshake token.
func NewSession(sessionID string) *Session {
	return &Session{SessionID: sessionID, isAnonymous: true}
}

// BindUser attaches a userId to this session exactly once. Per the
// immutable-auth-binding rule, a second call is a no-op: userId must never
// be mutated after the first bind.
func (s *Session) BindUser(userID string) {
	if s.userIDBound {
		return
	}
	s.userID = userID
	s.userIDBound = true
	s.isAnonymous = userID == ""
}

// UserID returns the bound userId, or "" if this session is anonymous or
// has not yet been bound.
func (s *Session) UserID() string {
	return s.userID
}

func (s *Session) IsAnonymous() bool {
	return s.isAnonymous
}
