package room

import "errors"

// Orchestrator-level validation/authorization errors, surfaced to the
// offending client only via the error event.
var (
	ErrNotYourTurn                   = errors.New("NOT_YOUR_TURN")
	ErrYouAreNotTheHost              = errors.New("YOU_ARE_NOT_THE_HOST")
	ErrNeedAtLeastNPlayers           = errors.New("NEED_AT_LEAST_N_PLAYERS")
	ErrCannotUseSecretWordAsHint     = errors.New("CANNOT_USE_THE_SECRET_WORD_AS_HINT")
	ErrRateLimited                   = errors.New("RATE_LIMITED")
	ErrNotAuthorized                 = errors.New("NOT_AUTHORIZED")
	ErrInvalidPayload                = errors.New("INVALID_PAYLOAD")
	ErrAlreadyInThisRoom             = errors.New("ALREADY_IN_ROOM")
)

// Friend-collaborator error codes, carried in the friend_error payload.
// FriendCollaborator is out of scope; these codes are wired for when a
// concrete implementation is plugged in.
var (
	ErrFriendInvalidUserID        = errors.New("INVALID_USER_ID")
	ErrFriendUserNotFound         = errors.New("USER_NOT_FOUND")
	ErrFriendAlreadyFriends       = errors.New("ALREADY_FRIENDS")
	ErrFriendRequestNotFound      = errors.New("REQUEST_NOT_FOUND")
	ErrFriendRequestAlreadyHandled = errors.New("REQUEST_ALREADY_HANDLED")
	ErrFriendSelfRequest          = errors.New("SELF_REQUEST")
	ErrFriendMaxFriendsReached    = errors.New("MAX_FRIENDS_REACHED")
	ErrFriendDatabaseError        = errors.New("DATABASE_ERROR")
)
