package projection

import (
	"testing"

	"github.com/harlowdev/imposter-arena/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoom(mode domain.GameMode) *domain.Room {
	room := domain.NewRoom("ABC123", "Test", "hunter2", mode)
	room.Players = []*domain.Player{
		{SessionID: "p1", UserID: "u1", DisplayName: "Alice"},
		{SessionID: "p2", UserID: "u2", DisplayName: "Bob"},
		{SessionID: "p3", UserID: "u3", DisplayName: "Cara"},
	}
	room.OwnerSessionID = "p1"
	return room
}

func TestRoomUpdate_StripsPasswordAndUserID(t *testing.T) {
	room := testRoom(domain.ModeClassic)
	view := RoomUpdate(room)

	assert.True(t, view.HasPassword) // presence flag allowed, raw value is not
	require.Len(t, view.Players, 3)
	assert.Equal(t, "Alice", view.Players[0].DisplayName)
	assert.Equal(t, "p1", view.Players[0].SessionID)
}

func TestGameStateFor_ClassicImposterSeesNoWord(t *testing.T) {
	room := testRoom(domain.ModeClassic)
	room.GameState = &domain.GameState{
		Phase:             domain.PhaseHintRound,
		CitizenWord:       "Elephant",
		ImposterSessionID: "p2",
	}

	imposterView := GameStateFor(room, "p2")
	assert.Equal(t, "", imposterView.Word)
	assert.True(t, imposterView.IsImposter)

	citizenView := GameStateFor(room, "p1")
	assert.Equal(t, "Elephant", citizenView.Word)
	assert.False(t, citizenView.IsImposter)
}

func TestGameStateFor_BlindEveryoneHasWordNobodyToldRole(t *testing.T) {
	room := testRoom(domain.ModeBlind)
	room.GameState = &domain.GameState{
		Phase:             domain.PhaseHintRound,
		CitizenWord:       "Elephant",
		ImposterWord:      "Giraffe",
		ImposterSessionID: "p2",
	}

	imposterView := GameStateFor(room, "p2")
	assert.Equal(t, "Giraffe", imposterView.Word)
	assert.False(t, imposterView.IsImposter)

	citizenView := GameStateFor(room, "p1")
	assert.Equal(t, "Elephant", citizenView.Word)
	assert.False(t, citizenView.IsImposter)
}

func TestGameStateFor_VotesOnlyDuringVoteResultAndGameOver(t *testing.T) {
	room := testRoom(domain.ModeClassic)
	room.GameState = &domain.GameState{
		Phase: domain.PhaseVoting,
		Votes: map[string]string{"p1": "p2"},
	}
	assert.Nil(t, GameStateFor(room, "p1").Votes)

	room.GameState.Phase = domain.PhaseVoteResult
	assert.Equal(t, map[string]string{"p1": "p2"}, GameStateFor(room, "p1").Votes)

	room.GameState.Phase = domain.PhaseGameOver
	assert.Equal(t, map[string]string{"p1": "p2"}, GameStateFor(room, "p1").Votes)
}

func TestGameStateFor_ImposterIDOnlyInGameOver(t *testing.T) {
	room := testRoom(domain.ModeClassic)
	room.GameState = &domain.GameState{Phase: domain.PhaseVoteResult, ImposterSessionID: "p2"}
	assert.Equal(t, "", GameStateFor(room, "p1").ImposterID)

	room.GameState.Phase = domain.PhaseGameOver
	assert.Equal(t, "p2", GameStateFor(room, "p1").ImposterID)
}

func TestListRooms_PublicShapeOnly(t *testing.T) {
	room := testRoom(domain.ModeClassic)
	listings := ListRooms([]*domain.Room{room})
	require.Len(t, listings, 1)
	assert.Equal(t, "Alice", listings[0].OwnerName)
	assert.True(t, listings[0].HasPassword)
	assert.Equal(t, 3, listings[0].PlayerCount)
}
