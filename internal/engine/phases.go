package engine

import "github.com/harlowdev/imposter-arena/internal/domain"

// Durations holds the configured length, in seconds, of every timed phase.
// Engine functions take it as a parameter rather than reading config
// directly, keeping them reference-transparent.
type Durations struct {
	RoleReveal int
	HintTurn   int
	Discussion int
	Voting     int
	VoteResult int
}

// transitionGraph lists every legal (from, to) edge of the phase state
// machine. LOBBY is initial, GAME_OVER is terminal within one
// match but play_again loops back to LOBBY.
var transitionGraph = map[domain.Phase]map[domain.Phase]bool{
	domain.PhaseLobby:      {domain.PhaseRoleReveal: true},
	domain.PhaseRoleReveal: {domain.PhaseHintRound: true},
	domain.PhaseHintRound:  {domain.PhaseDiscussion: true},
	domain.PhaseDiscussion: {domain.PhaseVoting: true},
	domain.PhaseVoting:     {domain.PhaseVoteResult: true},
	domain.PhaseVoteResult: {
		domain.PhaseHintRound: true, // next round, not eliminated
		domain.PhaseGameOver:  true, // terminal
	},
	domain.PhaseGameOver: {domain.PhaseLobby: true}, // play_again resets
}

// CanTransition reports whether targetPhase is a legal successor of
// fromPhase.
func CanTransition(from, to domain.Phase) bool {
	return transitionGraph[from][to]
}

// GetNextPhase returns the single default successor phase, for the edges
// that have exactly one outgoing transition. VOTE_RESULT is branching
// (HINT_ROUND vs GAME_OVER depending on checkWinCondition) and is resolved
// by the scheduler, not by this helper.
func GetNextPhase(current domain.Phase) domain.Phase {
	switch current {
	case domain.PhaseLobby:
		return domain.PhaseRoleReveal
	case domain.PhaseRoleReveal:
		return domain.PhaseHintRound
	case domain.PhaseHintRound:
		return domain.PhaseDiscussion
	case domain.PhaseDiscussion:
		return domain.PhaseVoting
	case domain.PhaseVoting:
		return domain.PhaseVoteResult
	case domain.PhaseGameOver:
		return domain.PhaseLobby
	default:
		return current
	}
}

// GetPhaseDuration returns the configured length of phase in seconds.
// LOBBY and GAME_OVER are untimed.
func GetPhaseDuration(phase domain.Phase, d Durations) int {
	switch phase {
	case domain.PhaseRoleReveal:
		return d.RoleReveal
	case domain.PhaseHintRound:
		return d.HintTurn
	case domain.PhaseDiscussion:
		return d.Discussion
	case domain.PhaseVoting:
		return d.Voting
	case domain.PhaseVoteResult:
		return d.VoteResult
	default:
		return 0
	}
}
