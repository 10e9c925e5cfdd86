package domain

// Player is a Session's membership record in one Room. A given sessionId
// belongs to at most one Room at a time.
type Player struct {
	SessionID   string
	UserID      string // "" for anonymous/guest sessions; stripped from room_update projections
	DisplayName string
	AvatarTag   string
	Ready       bool

	Role               Role
	Eliminated         bool
	LatestHint         string
	HasVotedThisRound  bool
}

// Clone returns a deep-enough copy safe for a recipient-specific snapshot
// to mutate without affecting the canonical record.
func (p *Player) Clone() *Player {
	cp := *p
	return &cp
}

// ResetForNewGame clears per-game fields, used by play_again.
func (p *Player) ResetForNewGame() {
	p.Role = ""
	p.Eliminated = false
	p.LatestHint = ""
	p.HasVotedThisRound = false
	p.Ready = false
}
