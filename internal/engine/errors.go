package engine

import "errors"

// Vote validation errors (validateVote), in the order the rules are checked.
var (
	ErrGameNotStarted  = errors.New("GAME_NOT_STARTED")
	ErrWrongPhase      = errors.New("WRONG_PHASE")
	ErrCannotVoteSelf  = errors.New("CANNOT_VOTE_SELF")
	ErrInvalidTarget   = errors.New("INVALID_TARGET")

	// ErrAlreadyVoted is defined but never raised: vote overwrite is
	// allowed, last-write-wins. Reserved for a future rule.
	ErrAlreadyVoted = errors.New("ALREADY_VOTED")

	// ErrSelfRequest has no caller in this subsystem; it mirrors the
	// friend-collaborator error code of the same name and is reserved
	// for future rules here too.
	ErrSelfRequest = errors.New("SELF_REQUEST")
)

// ErrInvalidTransition is a programmer error: canTransition rejected the
// requested edge. It is logged, never surfaced to a client.
var ErrInvalidTransition = errors.New("INVALID_TRANSITION")
