package room

import (
	"encoding/json"
	"time"
)

// MessageType is the discriminator of the single envelope this repo uses
// for every client<->server event. A teacher codebase mid-
// migration between two parallel envelopes is not carried forward here —
// one canonical shape covers the whole inbound/outbound event table.
type MessageType string

const (
	// Client to server
	MessageTypeJoinGame             MessageType = "JOIN_GAME"
	MessageTypeCreateRoom           MessageType = "CREATE_ROOM"
	MessageTypeJoinRoom             MessageType = "JOIN_ROOM"
	MessageTypeLeaveRoom            MessageType = "LEAVE_ROOM"
	MessageTypeStartGame            MessageType = "START_GAME"
	MessageTypeSubmitHint           MessageType = "SUBMIT_HINT"
	MessageTypeSubmitVote           MessageType = "SUBMIT_VOTE"
	MessageTypePlayAgain            MessageType = "PLAY_AGAIN"
	MessageTypeSendMessage          MessageType = "SEND_MESSAGE"
	MessageTypeGetRooms             MessageType = "GET_ROOMS"
	MessageTypeSendFriendRequest    MessageType = "SEND_FRIEND_REQUEST"
	MessageTypeAcceptFriendRequest  MessageType = "ACCEPT_FRIEND_REQUEST"
	MessageTypeDeclineFriendRequest MessageType = "DECLINE_FRIEND_REQUEST"
	MessageTypeCancelFriendRequest  MessageType = "CANCEL_FRIEND_REQUEST"
	MessageTypeRemoveFriend         MessageType = "REMOVE_FRIEND"
	MessageTypeSendRoomInvite       MessageType = "SEND_ROOM_INVITE"
	MessageTypeRespondToInvite      MessageType = "RESPOND_TO_INVITE"
	MessageTypeGetPendingInvites    MessageType = "GET_PENDING_INVITES"
	MessageTypeGetPendingRequests   MessageType = "GET_PENDING_REQUESTS"

	// Server to client
	MessageTypePlayerStatus       MessageType = "PLAYER_STATUS"
	MessageTypeRoomUpdate         MessageType = "ROOM_UPDATE"
	MessageTypeRoomList           MessageType = "ROOM_LIST"
	MessageTypeGameState          MessageType = "GAME_STATE"
	MessageTypeRoomMessage        MessageType = "ROOM_MESSAGE"
	MessageTypeError              MessageType = "ERROR"
	MessageTypeFriendOnline       MessageType = "FRIEND_ONLINE"
	MessageTypeFriendOffline      MessageType = "FRIEND_OFFLINE"
	MessageTypeFriendsOnlineList  MessageType = "FRIENDS_ONLINE_LIST"
	MessageTypeFriendError        MessageType = "FRIEND_ERROR"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// --- Client to server payloads ---

type JoinGamePayload struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type CreateRoomPayload struct {
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
	Category string `json:"category,omitempty"`
	GameMode string `json:"gameMode,omitempty"`
}

type JoinRoomPayload struct {
	RoomID   string `json:"roomId"`
	Password string `json:"password,omitempty"`
}

type StartGamePayload struct {
	Language string `json:"language,omitempty"`
}

type SubmitHintPayload struct {
	Text string `json:"text"`
}

type SubmitVotePayload struct {
	Target string `json:"targetSessionId"`
}

type SendMessagePayload struct {
	Text string `json:"text"`
}

// --- Server to client payloads ---

type ErrorPayload struct {
	Code string `json:"code"`
}

type PlayerStatusPayload struct {
	SessionID   string `json:"sessionId"`
	DisplayName string `json:"displayName"`
	AvatarTag   string `json:"avatarTag"`
	Ready       bool   `json:"ready"`
	Eliminated  bool   `json:"eliminated"`
}

type ChatMessage struct {
	SessionID   string `json:"sessionId"`
	DisplayName string `json:"displayName"`
	Text        string `json:"text"`
	Timestamp   int64  `json:"timestamp"`
}

type RoomListPayload struct {
	Rooms []RoomListingEntry `json:"rooms"`
}

type RoomListingEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	Status      string `json:"status"`
	HasPassword bool   `json:"hasPassword"`
	Category    string `json:"category,omitempty"`
	OwnerName   string `json:"ownerName"`
}

type FriendErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// --- Friend-collaborator payloads (friend_* events) ---

type SendFriendRequestPayload struct {
	ToUserID string `json:"toUserId"`
}

type RequestIDPayload struct {
	RequestID string `json:"requestId"`
}

type RemoveFriendPayload struct {
	FriendID string `json:"friendId"`
}

type SendRoomInvitePayload struct {
	ToUserID string `json:"toUserId"`
	RoomID   string `json:"roomId"`
}

type RespondToInvitePayload struct {
	InviteID string `json:"inviteId"`
	Accept   bool   `json:"accept"`
}

type FriendPendingListPayload struct {
	Items interface{} `json:"items"`
}
