package room

import (
	"encoding/json"

	"github.com/harlowdev/imposter-arena/internal/domain"
)

// CommandHandler decodes one inbound envelope and routes it either to the
// Hub (structural events: lobby join, room create/join, room listing,
// friend collaborator calls) or to the client's current Room actor
// (in-game events), mirroring the dispatch table shape of
// internal/websocket/client.go, generalized to this game's event set.
type CommandHandler struct {
	hub *Hub
}

func NewCommandHandler(hub *Hub) *CommandHandler {
	return &CommandHandler{hub: hub}
}

func (h *CommandHandler) Handle(c *Client, msg *Message) {
	if h.hub.rateLimiter != nil && !h.hub.rateLimiter.Allow(msg.Type, c.SessionID(), c.UserID()) {
		c.sendError(ErrRateLimited.Error())
		return
	}

	switch msg.Type {
	case MessageTypeJoinGame:
		var p JoinGamePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			c.sendError(ErrInvalidPayload.Error())
			return
		}
		h.hub.JoinLobby(c, p.Name, p.Avatar)

	case MessageTypeCreateRoom:
		var p CreateRoomPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			c.sendError(ErrInvalidPayload.Error())
			return
		}
		mode := domain.ModeClassic
		if p.GameMode == string(domain.ModeBlind) {
			mode = domain.ModeBlind
		}
		h.hub.CreateRoom(c, p.Name, p.Password, p.Category, mode)

	case MessageTypeJoinRoom:
		var p JoinRoomPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			c.sendError(ErrInvalidPayload.Error())
			return
		}
		h.hub.JoinRoom(c, p.RoomID, p.Password)

	case MessageTypeGetRooms:
		h.hub.GetRooms(c)

	case MessageTypeLeaveRoom:
		if c.room == nil {
			return
		}
		c.room.leave <- c

	case MessageTypeStartGame, MessageTypeSubmitHint, MessageTypeSubmitVote,
		MessageTypePlayAgain, MessageTypeSendMessage:
		if c.room == nil {
			c.sendError(ErrNotAuthorized.Error())
			return
		}
		c.room.commands <- &command{kind: msg.Type, client: c, payload: msg.Payload}

	case MessageTypeSendFriendRequest, MessageTypeAcceptFriendRequest,
		MessageTypeDeclineFriendRequest, MessageTypeCancelFriendRequest,
		MessageTypeRemoveFriend, MessageTypeSendRoomInvite,
		MessageTypeRespondToInvite, MessageTypeGetPendingInvites,
		MessageTypeGetPendingRequests:
		h.hub.HandleFriendEvent(c, msg.Type, msg.Payload)

	default:
		c.sendError(ErrInvalidPayload.Error())
	}
}
