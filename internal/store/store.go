// Package store holds the process-local, in-memory registries this game
// needs: room id → room record, session id → its current room, and user
// id → the set of active sessions. It mirrors the map/mutex discipline
// of internal/websocket/hub.go's Hub, generalized from one
// rooms-map-plus-clients-map to the three independent mappings this
// domain needs.
//
// Mutation of a given Room's player list and GameState is serialized by
// the orchestrator's per-room channel actor (internal/room), not by this
// package — Store's locks protect only the shared registries themselves
// (insert/delete/lookup), keeping locking read-dominant and fine-grained.
package store

import (
	"crypto/rand"
	"errors"
	"sync"

	"github.com/harlowdev/imposter-arena/internal/domain"
)

var (
	ErrRoomNotFound       = errors.New("ROOM_NOT_FOUND")
	ErrIncorrectPassword  = errors.New("INCORRECT_PASSWORD")
	ErrRoomFull           = errors.New("ROOM_FULL")
	ErrGameAlreadyStarted = errors.New("GAME_ALREADY_STARTED")
)

const roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const roomCodeLength = 6

type Store struct {
	mu    sync.RWMutex
	rooms map[string]*domain.Room

	sessionRoomMu sync.RWMutex
	sessionRoom   map[string]string // sessionId -> roomId

	presenceMu sync.RWMutex
	presence   domain.PresenceIndex
}

func New() *Store {
	return &Store{
		rooms:       make(map[string]*domain.Room),
		sessionRoom: make(map[string]string),
		presence:    domain.NewPresenceIndex(),
	}
}

// CreateRoom generates a collision-free 6-char upper alphanumeric roomId,
// registers owner as the sole player, and inserts the room.
func (s *Store) CreateRoom(owner *domain.Player, displayName, password, category string, mode domain.GameMode) (*domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var code string
	for {
		c, err := generateRoomCode()
		if err != nil {
			return nil, err
		}
		if _, exists := s.rooms[c]; !exists {
			code = c
			break
		}
	}

	room := domain.NewRoom(code, displayName, password, mode)
	room.SelectedCategory = category
	room.OwnerSessionID = owner.SessionID
	room.Players = append(room.Players, owner)
	s.rooms[code] = room

	s.sessionRoomMu.Lock()
	s.sessionRoom[owner.SessionID] = code
	s.sessionRoomMu.Unlock()

	return room, nil
}

// JoinRoom validates password, then status, then capacity, and appends
// player to the room.
func (s *Store) JoinRoom(roomID, password string, player *domain.Player) (*domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if room.HasPassword() && room.Password != password {
		return nil, ErrIncorrectPassword
	}
	if room.Status != domain.RoomStatusLobby {
		return nil, ErrGameAlreadyStarted
	}
	if room.IsFull() {
		return nil, ErrRoomFull
	}

	room.Players = append(room.Players, player)

	s.sessionRoomMu.Lock()
	s.sessionRoom[player.SessionID] = roomID
	s.sessionRoomMu.Unlock()

	return room, nil
}

// LeaveRoom removes sessionID from its room, transferring ownership to
// the new head of the list. It returns the room (nil
// if it was deleted because it became empty) and whether it was deleted.
func (s *Store) LeaveRoom(sessionID string) (room *domain.Room, deleted bool) {
	s.sessionRoomMu.Lock()
	roomID, ok := s.sessionRoom[sessionID]
	if ok {
		delete(s.sessionRoom, sessionID)
	}
	s.sessionRoomMu.Unlock()
	if !ok {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return nil, false
	}

	r.RemovePlayer(sessionID)

	if len(r.Players) == 0 {
		delete(s.rooms, roomID)
		return nil, true
	}

	if r.OwnerSessionID == sessionID {
		r.OwnerSessionID = r.Players[0].SessionID
	}

	return r, false
}

func (s *Store) GetRoom(roomID string) (*domain.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[roomID]
	return r, ok
}

func (s *Store) DeleteRoom(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, roomID)
}

// ListRooms returns every room currently registered, in no particular
// order; callers project this down to the public listing shape.
func (s *Store) ListRooms() []*domain.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]*domain.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	return rooms
}

// LookupBySession returns the roomId a session currently belongs to.
func (s *Store) LookupBySession(sessionID string) (string, bool) {
	s.sessionRoomMu.RLock()
	defer s.sessionRoomMu.RUnlock()
	roomID, ok := s.sessionRoom[sessionID]
	return roomID, ok
}

// AddPresence registers sessionID under userID; true means this was the
// 0→1 transition (caller should emit friend_online).
func (s *Store) AddPresence(userID, sessionID string) bool {
	if userID == "" {
		return false
	}
	s.presenceMu.Lock()
	defer s.presenceMu.Unlock()
	return s.presence.Add(userID, sessionID)
}

// RemovePresence unregisters sessionID under userID; true means this was
// the 1→0 transition (caller should emit friend_offline).
func (s *Store) RemovePresence(userID, sessionID string) bool {
	if userID == "" {
		return false
	}
	s.presenceMu.Lock()
	defer s.presenceMu.Unlock()
	return s.presence.Remove(userID, sessionID)
}

func (s *Store) PresenceCount(userID string) int {
	s.presenceMu.RLock()
	defer s.presenceMu.RUnlock()
	return s.presence.Count(userID)
}

func generateRoomCode() (string, error) {
	buf := make([]byte, roomCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := make([]byte, roomCodeLength)
	for i, b := range buf {
		code[i] = roomCodeAlphabet[int(b)%len(roomCodeAlphabet)]
	}
	return string(code), nil
}
