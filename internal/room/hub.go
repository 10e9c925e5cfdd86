package room

import (
	"encoding/json"
	"log"
	"math/rand"
	"sync"

	"github.com/harlowdev/imposter-arena/internal/domain"
	"github.com/harlowdev/imposter-arena/internal/engine"
	"github.com/harlowdev/imposter-arena/internal/projection"
	"github.com/harlowdev/imposter-arena/internal/store"
)

// Hub is the global registry: active rooms, connected clients, and the
// register/unregister channels that serialize client registration.
// Room creation and joining are direct method calls guarded by mu. Modeled on internal/websocket/hub.go's
// Hub, generalized from a single rooms map to this game's
// join-lobby/create-room/join-room/get-rooms event set.
type Hub struct {
	store *store.Store

	durations  engine.Durations
	hintRounds int
	rand       engine.Rand

	stats       StatsRecorder
	friends     FriendCollaborator
	rateLimiter RateLimiter

	mu      sync.RWMutex
	clients map[*Client]bool
	rooms   map[string]*Room // roomId -> running actor

	register   chan *Client
	unregister chan *Client

	stop    chan struct{}
	done    chan struct{}
	stopped bool
}

// StatsRecorder is the out-of-scope persistence collaborator for match
// summaries. Failures never affect gameplay; implementations must be
// idempotent on MatchSummary.GameID.
type StatsRecorder interface {
	RecordGameEnd(summary domain.MatchSummary)
}

// RateLimiter is the out-of-scope per-event rate limiter collaborator:
// allow(event, sessionId, userId?) -> bool. A nil RateLimiter (the
// default; no implementation ships in this repo) means every event is
// allowed.
type RateLimiter interface {
	Allow(event MessageType, sessionID, userID string) bool
}

// FriendCollaborator is the out-of-scope friend/presence subsystem. The
// orchestrator wires every friend_* event to it; this repo ships no
// implementation, only the interface and dispatch.
type FriendCollaborator interface {
	SendFriendRequest(fromUserID, toUserID string) error
	AcceptFriendRequest(userID, requestID string) error
	DeclineFriendRequest(userID, requestID string) error
	CancelFriendRequest(userID, requestID string) error
	RemoveFriend(userID, friendID string) error
	SendRoomInvite(fromUserID, toUserID, roomID string) error
	RespondToInvite(userID, inviteID string, accept bool) error
	PendingInvites(userID string) (interface{}, error)
	PendingRequests(userID string) (interface{}, error)
}

func NewHub(st *store.Store, durations engine.Durations, hintRounds int, stats StatsRecorder, friends FriendCollaborator, limiter RateLimiter) *Hub {
	return &Hub{
		store:       st,
		durations:   durations,
		hintRounds:  hintRounds,
		rand:        rand.Float64,
		stats:       stats,
		friends:     friends,
		rateLimiter: limiter,
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			rooms := make([]*Room, 0, len(h.rooms))
			for _, r := range h.rooms {
				rooms = append(rooms, r)
			}
			h.mu.Unlock()

			for _, r := range rooms {
				r.Stop()
			}
			for _, r := range rooms {
				r.Wait()
			}

			h.mu.Lock()
			for c := range h.clients {
				c.Close()
			}
			h.clients = make(map[*Client]bool)
			h.rooms = make(map[string]*Room)
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[c] = true
			}
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			stopped := h.stopped
			if !stopped {
				if _, ok := h.clients[c]; ok {
					delete(h.clients, c)
					c.Close()
				}
			}
			h.mu.Unlock()
			if !stopped {
				h.handleDisconnect(c)
			}
		}
	}
}

func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()
	close(h.stop)
	<-h.done
}

func (h *Hub) Register(c *Client) {
	h.register <- c
}

func (h *Hub) Unregister(c *Client) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}
	select {
	case h.unregister <- c:
	default:
	}
}

func (h *Hub) handleDisconnect(c *Client) {
	if c.UserID() != "" {
		if h.store.RemovePresence(c.UserID(), c.SessionID()) {
			h.emitFriendOffline(c.UserID())
		}
	}
	if c.room != nil {
		c.room.leave <- c
	}
}

// JoinLobby binds the Player record to this session, updates presence,
// and responds with the current room list for the join_lobby event.
func (h *Hub) JoinLobby(c *Client, displayName, avatarTag string) {
	c.displayName = displayName
	c.avatarTag = avatarTag
	if c.UserID() != "" {
		if h.store.AddPresence(c.UserID(), c.SessionID()) {
			h.emitFriendOnline(c.UserID())
		}
	}

	status, err := NewMessage(MessageTypePlayerStatus, PlayerStatusPayload{
		SessionID:   c.SessionID(),
		DisplayName: c.displayName,
		AvatarTag:   c.avatarTag,
	})
	if err == nil {
		c.Send(status)
	}

	c.sendRoomList(h.store.ListRooms())
}

// CreateRoom creates the room in the store and spawns its Room actor.
func (h *Hub) CreateRoom(c *Client, roomName, password, category string, mode domain.GameMode) {
	owner := &domain.Player{SessionID: c.SessionID(), UserID: c.UserID(), DisplayName: c.displayName, AvatarTag: c.avatarTag}
	domRoom, err := h.store.CreateRoom(owner, roomName, password, category, mode)
	if err != nil {
		c.sendError("ROOM_CREATE_FAILED")
		return
	}

	actor := newRoom(domRoom, h.store, h.durations, h.hintRounds, h.rand, h.stats, h.friends, h)

	h.mu.Lock()
	h.rooms[domRoom.RoomID] = actor
	h.mu.Unlock()

	go actor.Run()

	actor.join <- &joinRequest{client: c}
	h.broadcastRoomList()
}

// JoinRoom forwards the client to an existing Room actor's join channel.
func (h *Hub) JoinRoom(c *Client, roomID, password string) {
	h.mu.RLock()
	actor, ok := h.rooms[roomID]
	h.mu.RUnlock()
	if !ok {
		c.sendError(store.ErrRoomNotFound.Error())
		return
	}

	if c.room != nil {
		c.room.leave <- c
	}

	actor.join <- &joinRequest{client: c, password: password}
}

func (h *Hub) GetRooms(c *Client) {
	c.sendRoomList(h.store.ListRooms())
}

func (h *Hub) broadcastRoomList() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	listing := h.store.ListRooms()
	for _, c := range clients {
		c.sendRoomList(listing)
	}
}

// deleteRoom removes a finished/emptied room's actor from the registry.
func (h *Hub) deleteRoom(roomID string) {
	h.mu.Lock()
	delete(h.rooms, roomID)
	h.mu.Unlock()
	h.broadcastRoomList()
}

func (c *Client) sendRoomList(rooms []*domain.Room) {
	listings := projection.ListRooms(rooms)
	entries := make([]RoomListingEntry, len(listings))
	for i, l := range listings {
		entries[i] = RoomListingEntry{
			ID: l.ID, Name: l.Name, PlayerCount: l.PlayerCount, MaxPlayers: l.MaxPlayers,
			Status: string(l.Status), HasPassword: l.HasPassword, Category: l.Category, OwnerName: l.OwnerName,
		}
	}
	msg, err := NewMessage(MessageTypeRoomList, RoomListPayload{Rooms: entries})
	if err != nil {
		log.Printf("room: failed to build room list: %v", err)
		return
	}
	c.Send(msg)
}

// HandleFriendEvent dispatches one friend_* command to the out-of-scope
// FriendCollaborator. With no implementation wired, every call
// reports friend_error DATABASE_ERROR rather than silently succeeding, so
// a client never mistakes "unimplemented" for "done".
func (h *Hub) HandleFriendEvent(c *Client, msgType MessageType, payload json.RawMessage) {
	if h.friends == nil {
		c.sendFriendError(ErrFriendDatabaseError.Error(), "friend collaborator not configured")
		return
	}

	var err error
	switch msgType {
	case MessageTypeSendFriendRequest:
		var p SendFriendRequestPayload
		json.Unmarshal(payload, &p)
		err = h.friends.SendFriendRequest(c.UserID(), p.ToUserID)
	case MessageTypeAcceptFriendRequest:
		var p RequestIDPayload
		json.Unmarshal(payload, &p)
		err = h.friends.AcceptFriendRequest(c.UserID(), p.RequestID)
	case MessageTypeDeclineFriendRequest:
		var p RequestIDPayload
		json.Unmarshal(payload, &p)
		err = h.friends.DeclineFriendRequest(c.UserID(), p.RequestID)
	case MessageTypeCancelFriendRequest:
		var p RequestIDPayload
		json.Unmarshal(payload, &p)
		err = h.friends.CancelFriendRequest(c.UserID(), p.RequestID)
	case MessageTypeRemoveFriend:
		var p RemoveFriendPayload
		json.Unmarshal(payload, &p)
		err = h.friends.RemoveFriend(c.UserID(), p.FriendID)
	case MessageTypeSendRoomInvite:
		var p SendRoomInvitePayload
		json.Unmarshal(payload, &p)
		err = h.friends.SendRoomInvite(c.UserID(), p.ToUserID, p.RoomID)
	case MessageTypeRespondToInvite:
		var p RespondToInvitePayload
		json.Unmarshal(payload, &p)
		err = h.friends.RespondToInvite(c.UserID(), p.InviteID, p.Accept)
	case MessageTypeGetPendingInvites:
		items, e := h.friends.PendingInvites(c.UserID())
		err = e
		if err == nil {
			msg, _ := NewMessage(MessageTypeFriendsOnlineList, FriendPendingListPayload{Items: items})
			c.Send(msg)
		}
	case MessageTypeGetPendingRequests:
		items, e := h.friends.PendingRequests(c.UserID())
		err = e
		if err == nil {
			msg, _ := NewMessage(MessageTypeFriendsOnlineList, FriendPendingListPayload{Items: items})
			c.Send(msg)
		}
	}

	if err != nil {
		c.sendFriendError(err.Error(), "")
	}
}

func (h *Hub) emitFriendOnline(userID string) {
	// FriendCollaborator is out of scope; presence transition is tracked
	// here so a concrete implementation can be plugged in without
	// touching the orchestrator.
	_ = userID
}

func (h *Hub) emitFriendOffline(userID string) {
	_ = userID
}
