// Package projection converts canonical domain state into
// recipient-specific payloads — the server's cheat barrier: no client
// ever receives another player's role or word, and no client
// ever sees a password. This is factored out of the channel-actor plumbing
// (unlike an inline sendStateSyncLocked) so the visibility rules are
// unit-testable on their own.
package projection

import "github.com/harlowdev/imposter-arena/internal/domain"

// PlayerView is a Player with userId and any server-only fields removed.
type PlayerView struct {
	SessionID         string `json:"sessionId"`
	DisplayName       string `json:"displayName"`
	AvatarTag         string `json:"avatarTag"`
	Ready             bool   `json:"ready"`
	Eliminated        bool   `json:"eliminated"`
	HasVotedThisRound bool   `json:"hasVotedThisRound"`
}

// RoomView is a Room with password stripped and every player sanitized.
type RoomView struct {
	RoomID         string       `json:"roomId"`
	DisplayName    string       `json:"displayName"`
	HasPassword    bool         `json:"hasPassword"`
	Players        []PlayerView `json:"players"`
	OwnerSessionID string       `json:"ownerSessionId"`
	Status         domain.RoomStatus `json:"status"`
	Category       string       `json:"category,omitempty"`
	GameMode       domain.GameMode   `json:"gameMode"`
}

// RoomUpdate builds the fanout payload for a room broadcast: the Room
// minus password, each Player stripped of userId.
func RoomUpdate(room *domain.Room) RoomView {
	players := make([]PlayerView, len(room.Players))
	for i, p := range room.Players {
		players[i] = PlayerView{
			SessionID:         p.SessionID,
			DisplayName:       p.DisplayName,
			AvatarTag:         p.AvatarTag,
			Ready:             p.Ready,
			Eliminated:        p.Eliminated,
			HasVotedThisRound: p.HasVotedThisRound,
		}
	}
	return RoomView{
		RoomID:         room.RoomID,
		DisplayName:    room.DisplayName,
		HasPassword:    room.HasPassword(),
		Players:        players,
		OwnerSessionID: room.OwnerSessionID,
		Status:         room.Status,
		Category:       room.SelectedCategory,
		GameMode:       room.GameMode,
	}
}

// GameStateView is the per-recipient projection of GameState.
type GameStateView struct {
	GameID           string              `json:"gameId"`
	Phase            domain.Phase        `json:"phase"`
	Category         string              `json:"category"`
	Word             string              `json:"word,omitempty"`
	IsImposter       bool                `json:"isImposter"`
	CurrentTurnIndex int                 `json:"currentTurnIndex"`
	TurnOrder        []string            `json:"turnOrder"`
	TurnTimeLeft     int                 `json:"turnTimeLeft"`
	PhaseTimeLeft    int                 `json:"phaseTimeLeft"`
	RoundNumber      int                 `json:"roundNumber"`
	Hints            map[string][]string `json:"hints"`
	EliminatedPlayerID string            `json:"eliminatedPlayerId,omitempty"`
	Votes            map[string]string   `json:"votes,omitempty"`
	Winner           domain.Winner       `json:"winner,omitempty"`
	ImposterID       string              `json:"imposterId,omitempty"`
}

// GameStateFor builds the projection directed to recipientSessionID.
// Word visibility: CLASSIC hides the imposter's own word from them;
// BLIND gives everyone a word but never reveals role.
// votes is populated only in VOTE_RESULT/GAME_OVER; imposterId only in
// GAME_OVER.
func GameStateFor(room *domain.Room, recipientSessionID string) *GameStateView {
	state := room.GameState
	if state == nil {
		return nil
	}

	isImposter := recipientSessionID == state.ImposterSessionID

	view := &GameStateView{
		GameID:           state.GameID,
		Phase:            state.Phase,
		Category:         state.Category,
		CurrentTurnIndex: state.CurrentTurnIndex,
		TurnOrder:        append([]string(nil), state.TurnOrder...),
		TurnTimeLeft:     state.TurnTimeLeft,
		PhaseTimeLeft:    state.PhaseTimeLeft,
		RoundNumber:      state.RoundNumber,
		Hints:            cloneHints(state.Hints),
		EliminatedPlayerID: state.EliminatedPlayerID,
		Winner:           state.Winner,
	}

	switch room.GameMode {
	case domain.ModeBlind:
		if isImposter {
			view.Word = state.ImposterWord
		} else {
			view.Word = state.CitizenWord
		}
		view.IsImposter = false
	default: // CLASSIC
		if isImposter {
			view.Word = ""
			view.IsImposter = true
		} else {
			view.Word = state.CitizenWord
			view.IsImposter = false
		}
	}

	if state.Phase == domain.PhaseVoteResult || state.Phase == domain.PhaseGameOver {
		view.Votes = cloneVotes(state.Votes)
	}
	if state.Phase == domain.PhaseGameOver {
		view.ImposterID = state.ImposterSessionID
	}

	return view
}

func cloneVotes(votes map[string]string) map[string]string {
	cp := make(map[string]string, len(votes))
	for k, v := range votes {
		cp[k] = v
	}
	return cp
}

func cloneHints(hints map[string][]string) map[string][]string {
	cp := make(map[string][]string, len(hints))
	for k, v := range hints {
		cp[k] = append([]string(nil), v...)
	}
	return cp
}

// RoomListing is the public, unauthenticated room list entry.
type RoomListing struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	PlayerCount int               `json:"playerCount"`
	MaxPlayers  int               `json:"maxPlayers"`
	Status      domain.RoomStatus `json:"status"`
	HasPassword bool              `json:"hasPassword"`
	Category    string            `json:"category,omitempty"`
	OwnerName   string            `json:"ownerName"`
}

// ListRooms builds the public lobby listing: no password, no user ids.
func ListRooms(rooms []*domain.Room) []RoomListing {
	listings := make([]RoomListing, 0, len(rooms))
	for _, r := range rooms {
		ownerName := ""
		if owner := r.FindPlayer(r.OwnerSessionID); owner != nil {
			ownerName = owner.DisplayName
		}
		listings = append(listings, RoomListing{
			ID:          r.RoomID,
			Name:        r.DisplayName,
			PlayerCount: len(r.Players),
			MaxPlayers:  domain.MaxPlayers,
			Status:      r.Status,
			HasPassword: r.HasPassword(),
			Category:    r.SelectedCategory,
			OwnerName:   ownerName,
		})
	}
	return listings
}
