package domain

// Room is the unit of play: an ordered set of players sharing one lobby
// and, once started, one GameState. The Room exclusively owns its player
// list, its GameState, and its active timer handle (enforced one layer up).
type Room struct {
	RoomID      string
	DisplayName string
	Password    string // empty means no password; never serialized to clients

	Players        []*Player
	OwnerSessionID string
	Status         RoomStatus

	SelectedCategory string
	GameMode         GameMode

	GameState *GameState
}

func NewRoom(roomID, displayName, password string, mode GameMode) *Room {
	return &Room{
		RoomID:      roomID,
		DisplayName: displayName,
		Password:    password,
		GameMode:    mode,
		Status:      RoomStatusLobby,
	}
}

func (r *Room) HasPassword() bool {
	return r.Password != ""
}

func (r *Room) FindPlayer(sessionID string) *Player {
	for _, p := range r.Players {
		if p.SessionID == sessionID {
			return p
		}
	}
	return nil
}

func (r *Room) RemovePlayer(sessionID string) {
	for i, p := range r.Players {
		if p.SessionID == sessionID {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return
		}
	}
}

func (r *Room) IsFull() bool {
	return len(r.Players) >= MaxPlayers
}

// NonEliminatedCount returns the number of players still alive in the
// current game (meaningless outside PLAYING).
func (r *Room) NonEliminatedCount() int {
	n := 0
	for _, p := range r.Players {
		if !p.Eliminated {
			n++
		}
	}
	return n
}
