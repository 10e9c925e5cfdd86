package room

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harlowdev/imposter-arena/internal/domain"
	"github.com/harlowdev/imposter-arena/internal/engine"
	"github.com/harlowdev/imposter-arena/internal/engine/wordlists"
	"github.com/harlowdev/imposter-arena/internal/projection"
	"github.com/harlowdev/imposter-arena/internal/store"
)

type joinRequest struct {
	client   *Client
	password string
}

type command struct {
	kind    MessageType
	client  *Client
	payload json.RawMessage
}

// Room is the per-room channel actor: every mutation to its domain.Room
// (roster changes, votes, hints, phase transitions) happens on the single
// goroutine running Run(), so no two mutations ever interleave.
// Structured like internal/websocket/room.go's Room: a bundle of typed
// command channels drained by one select loop.
type Room struct {
	dom *domain.Room
	st  *store.Store
	hub *Hub

	durations  engine.Durations
	hintRounds int
	rand       engine.Rand

	stats   StatsRecorder
	friends FriendCollaborator

	clients map[string]*Client // sessionId -> client, local broadcast fanout

	join     chan *joinRequest
	leave    chan *Client
	commands chan *command

	timer *Timer
	tickC <-chan time.Time

	stop chan struct{}
	done chan struct{}
}

func newRoom(dom *domain.Room, st *store.Store, durations engine.Durations, hintRounds int, rnd engine.Rand, stats StatsRecorder, friends FriendCollaborator, hub *Hub) *Room {
	return &Room{
		dom:        dom,
		st:         st,
		hub:        hub,
		durations:  durations,
		hintRounds: hintRounds,
		rand:       rnd,
		stats:      stats,
		friends:    friends,
		clients:    make(map[string]*Client),
		join:       make(chan *joinRequest),
		leave:      make(chan *Client),
		commands:   make(chan *command, 32),
		timer:      &Timer{},
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (r *Room) Run() {
	defer close(r.done)

	for {
		select {
		case <-r.stop:
			r.timer.Stop()
			return

		case req := <-r.join:
			r.handleJoin(req)

		case c := <-r.leave:
			r.handleLeave(c)
			if len(r.dom.Players) == 0 {
				r.timer.Stop()
				r.st.DeleteRoom(r.dom.RoomID)
				r.hub.deleteRoom(r.dom.RoomID)
				return
			}

		case cmd := <-r.commands:
			r.dispatch(cmd)

		case <-r.tickC:
			r.handleTick()
		}
	}
}

// Stop requests the actor to exit; Wait blocks until it has.
func (r *Room) Stop() {
	select {
	case <-r.done:
	default:
		close(r.stop)
	}
}

func (r *Room) Wait() {
	<-r.done
}

func (r *Room) dispatch(cmd *command) {
	switch cmd.kind {
	case MessageTypeStartGame:
		var p StartGamePayload
		json.Unmarshal(cmd.payload, &p)
		r.handleStartGame(cmd.client, p.Language)
	case MessageTypeSubmitHint:
		var p SubmitHintPayload
		json.Unmarshal(cmd.payload, &p)
		r.handleSubmitHint(cmd.client, p.Text)
	case MessageTypeSubmitVote:
		var p SubmitVotePayload
		json.Unmarshal(cmd.payload, &p)
		r.handleSubmitVote(cmd.client, p.Target)
	case MessageTypePlayAgain:
		r.handlePlayAgain(cmd.client)
	case MessageTypeSendMessage:
		var p SendMessagePayload
		json.Unmarshal(cmd.payload, &p)
		r.handleSendMessage(cmd.client, p.Text)
	}
}

// --- join / leave ---

func (r *Room) handleJoin(req *joinRequest) {
	c := req.client
	existing := r.dom.FindPlayer(c.SessionID())
	if existing == nil {
		player := &domain.Player{SessionID: c.SessionID(), UserID: c.UserID(), DisplayName: c.displayName, AvatarTag: c.avatarTag}
		if _, err := r.st.JoinRoom(r.dom.RoomID, req.password, player); err != nil {
			c.sendError(err.Error())
			return
		}
	}

	c.room = r
	r.clients[c.SessionID()] = c

	r.broadcastRoomUpdate()
	if r.dom.Status == domain.RoomStatusPlaying {
		r.sendGameStateTo(c)
	}
}

func (r *Room) handleLeave(c *Client) {
	delete(r.clients, c.SessionID())
	c.room = nil
	r.sendNullRoomUpdateTo(c)

	if r.dom.GameState != nil && r.dom.Status == domain.RoomStatusPlaying {
		r.scrubDisconnectedPlayer(c.SessionID())
	}

	updated, deleted := r.st.LeaveRoom(c.SessionID())
	if deleted || updated == nil {
		return
	}

	if len(updated.Players) < domain.MinPlayers && updated.Status == domain.RoomStatusPlaying {
		updated.Status = domain.RoomStatusLobby
		updated.GameState = nil
		r.timer.Stop()
		r.tickC = nil
		for _, p := range updated.Players {
			p.ResetForNewGame()
		}
	}

	r.broadcastRoomUpdate()
	r.hub.broadcastRoomList()
}

// scrubDisconnectedPlayer removes a departed session from
// turnOrder/votes/hints, and ends the game early if it was the
// imposter.
func (r *Room) scrubDisconnectedPlayer(sessionID string) {
	state := r.dom.GameState

	next := make([]string, 0, len(state.TurnOrder))
	for _, id := range state.TurnOrder {
		if id != sessionID {
			next = append(next, id)
		}
	}
	state.TurnOrder = next

	delete(state.Votes, sessionID)
	for voter, target := range state.Votes {
		if target == sessionID {
			delete(state.Votes, voter)
		}
	}
	delete(state.Hints, sessionID)

	if len(state.TurnOrder) > 0 {
		state.CurrentTurnIndex = state.CurrentTurnIndex % len(state.TurnOrder)
	} else {
		state.CurrentTurnIndex = 0
	}

	if state.ImposterSessionID == sessionID && state.Phase != domain.PhaseGameOver {
		state.Winner = domain.WinnerCitizens
		state.Phase = domain.PhaseGameOver
		r.dom.Status = domain.RoomStatusEnded
		r.timer.Stop()
		r.tickC = nil
		r.recordStats()
		r.broadcastGameState()
	}
}

// --- start_game ---

func (r *Room) handleStartGame(c *Client, language string) {
	if c.SessionID() != r.dom.OwnerSessionID {
		c.sendError(ErrYouAreNotTheHost.Error())
		return
	}
	if len(r.dom.Players) < domain.MinPlayers {
		c.sendError(ErrNeedAtLeastNPlayers.Error())
		return
	}

	category := r.dom.SelectedCategory
	if category == "" {
		cats := wordlists.Categories()
		category = cats[int(r.rand()*float64(len(cats)))%len(cats)]
	}
	words, ok := wordlists.WordsFor(category, language)
	if !ok || len(words) == 0 {
		c.sendError("INVALID_CATEGORY")
		return
	}
	selection := engine.SelectWordsForMode(r.dom.GameMode, words, r.rand)

	imposterIdx := int(r.rand() * float64(len(r.dom.Players)))
	if imposterIdx >= len(r.dom.Players) {
		imposterIdx = len(r.dom.Players) - 1
	}
	imposter := r.dom.Players[imposterIdx]

	turnOrder := engine.SelectTurnOrder(r.dom.Players, imposter.SessionID, r.rand)

	for _, p := range r.dom.Players {
		p.Eliminated = false
		p.HasVotedThisRound = false
		p.LatestHint = ""
		if p.SessionID == imposter.SessionID {
			p.Role = domain.RoleImposter
		} else {
			p.Role = domain.RoleCitizen
		}
	}

	r.dom.Status = domain.RoomStatusPlaying
	r.dom.GameState = &domain.GameState{
		GameID:            uuid.NewString(),
		Phase:             domain.PhaseRoleReveal,
		Category:          category,
		CitizenWord:       selection.CitizenWord,
		ImposterWord:      selection.ImposterWord,
		ImposterSessionID: imposter.SessionID,
		TurnOrder:         turnOrder,
		RoundNumber:       1,
		PhaseTimeLeft:     r.durations.RoleReveal,
		Votes:             make(map[string]string),
		Hints:             make(map[string][]string),
		StartedAt:         time.Now().Unix(),
	}

	r.startTicking()
	r.broadcastRoomUpdate()
	r.broadcastGameState()
}

func (r *Room) startTicking() {
	if r.tickC == nil {
		r.tickC = r.timer.Start()
	}
}

// --- submit_hint ---

func (r *Room) handleSubmitHint(c *Client, text string) {
	state := r.dom.GameState
	if state == nil || state.Phase != domain.PhaseHintRound {
		c.sendError(engine.ErrWrongPhase.Error())
		return
	}
	if state.CurrentSpeaker() != c.SessionID() {
		c.sendError(ErrNotYourTurn.Error())
		return
	}
	if engine.HintEqualsSecretWord(text, state.CitizenWord) {
		c.sendError(ErrCannotUseSecretWordAsHint.Error())
		return
	}

	hint := engine.NormalizeHint(text)
	state.Hints[c.SessionID()] = append(state.Hints[c.SessionID()], hint)
	if p := r.dom.FindPlayer(c.SessionID()); p != nil {
		p.LatestHint = hint
	}

	r.advanceHintTurn(false)
	r.broadcastRoomUpdate()
	r.broadcastGameState()
}

// advanceHintTurn implements the hint-round completion logic shared by
// both a normal submission and a turn timeout.
func (r *Room) advanceHintTurn(timedOut bool) {
	state := r.dom.GameState
	if timedOut {
		speaker := state.CurrentSpeaker()
		if speaker != "" {
			state.Hints[speaker] = append(state.Hints[speaker], "(Timed out)")
		}
	}

	state.CurrentTurnIndex++
	state.CurrentTurnIndex = r.skipEliminatedSpeakers(state.CurrentTurnIndex)

	if state.CurrentTurnIndex >= len(state.TurnOrder) {
		state.CurrentTurnIndex = 0
		if state.RoundNumber < r.hintRounds {
			state.RoundNumber++
			state.TurnTimeLeft = r.durations.HintTurn
		} else {
			r.transitionTo(domain.PhaseDiscussion)
			return
		}
	} else {
		state.TurnTimeLeft = r.durations.HintTurn
	}
}

func (r *Room) skipEliminatedSpeakers(start int) int {
	state := r.dom.GameState
	if len(state.TurnOrder) == 0 {
		return 0
	}
	idx := start
	for i := 0; i < len(state.TurnOrder); i++ {
		if idx >= len(state.TurnOrder) {
			return idx
		}
		p := r.dom.FindPlayer(state.TurnOrder[idx])
		if p == nil || !p.Eliminated {
			return idx
		}
		idx++
	}
	return idx
}

// --- submit_vote ---

func (r *Room) handleSubmitVote(c *Client, target string) {
	if err := engine.ValidateVote(r.dom, c.SessionID(), target); err != nil {
		c.sendError(err.Error())
		return
	}

	state := r.dom.GameState
	state.Votes = engine.ApplyVote(state, c.SessionID(), target)
	if p := r.dom.FindPlayer(c.SessionID()); p != nil {
		p.HasVotedThisRound = true
	}

	r.broadcastRoomUpdate()
	r.broadcastGameState()

	if r.allNonEliminatedVoted() {
		r.resolveVotes()
	}
}

func (r *Room) allNonEliminatedVoted() bool {
	state := r.dom.GameState
	for _, p := range r.dom.Players {
		if p.Eliminated {
			continue
		}
		if _, voted := state.Votes[p.SessionID]; !voted {
			return false
		}
	}
	return true
}

// resolveVotes implements the VOTING completion handler.
func (r *Room) resolveVotes() {
	state := r.dom.GameState
	eliminatedID := engine.CalculateEliminated(state.Votes)
	state.EliminatedPlayerID = eliminatedID
	if eliminatedID != "" {
		if p := r.dom.FindPlayer(eliminatedID); p != nil {
			p.Eliminated = true
		}
	}
	r.transitionTo(domain.PhaseVoteResult)
}

// --- play_again ---

func (r *Room) handlePlayAgain(c *Client) {
	if c.SessionID() != r.dom.OwnerSessionID {
		c.sendError(ErrYouAreNotTheHost.Error())
		return
	}
	if r.dom.Status != domain.RoomStatusEnded {
		c.sendError(engine.ErrWrongPhase.Error())
		return
	}

	r.timer.Stop()
	r.tickC = nil
	r.dom.GameState = nil
	r.dom.Status = domain.RoomStatusLobby
	for _, p := range r.dom.Players {
		p.ResetForNewGame()
	}

	r.broadcastRoomUpdate()
}

// --- send_message ---

func (r *Room) handleSendMessage(c *Client, text string) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) > 200 {
		trimmed = trimmed[:200]
	}
	if trimmed == "" {
		return
	}

	player := r.dom.FindPlayer(c.SessionID())
	name := c.SessionID()
	if player != nil {
		name = player.DisplayName
	}

	msg, err := NewMessage(MessageTypeRoomMessage, ChatMessage{
		SessionID:   c.SessionID(),
		DisplayName: name,
		Text:        trimmed,
		Timestamp:   time.Now().UnixMilli(),
	})
	if err != nil {
		return
	}
	r.broadcast(msg)
}

// --- 1 Hz scheduler tick ---

func (r *Room) handleTick() {
	if r.dom.Status != domain.RoomStatusPlaying || r.dom.GameState == nil {
		return
	}
	state := r.dom.GameState

	switch state.Phase {
	case domain.PhaseHintRound:
		state.TurnTimeLeft--
		if state.TurnTimeLeft <= 0 {
			r.advanceHintTurn(true)
		}
	default:
		state.PhaseTimeLeft--
		if state.PhaseTimeLeft <= 0 {
			r.handlePhaseExpired()
		}
	}

	r.broadcastGameState()
}

func (r *Room) handlePhaseExpired() {
	state := r.dom.GameState
	switch state.Phase {
	case domain.PhaseRoleReveal:
		r.transitionTo(domain.PhaseHintRound)
	case domain.PhaseDiscussion:
		r.transitionTo(domain.PhaseVoting)
	case domain.PhaseVoting:
		r.resolveVotes()
	case domain.PhaseVoteResult:
		r.handleVoteResultExpired()
	}
}

func (r *Room) handleVoteResultExpired() {
	winner := engine.CheckWinCondition(r.dom)
	state := r.dom.GameState
	if winner != "" {
		state.Winner = winner
		r.dom.Status = domain.RoomStatusEnded
		state.Phase = domain.PhaseGameOver
		state.PhaseTimeLeft = 0
		r.timer.Stop()
		r.tickC = nil
		r.recordStats()
		r.broadcastGameState()
		return
	}

	state.EliminatedPlayerID = ""
	state.Votes = make(map[string]string)
	state.Hints = make(map[string][]string)
	state.RoundNumber = 1
	for _, p := range r.dom.Players {
		p.HasVotedThisRound = false
	}
	r.transitionTo(domain.PhaseHintRound)
}

// transitionTo applies a pure engine phase transition and, on success,
// replaces the room's GameState and broadcasts it.
func (r *Room) transitionTo(target domain.Phase) {
	res := engine.ApplyPhaseTransition(r.dom.GameState, target, r.durations)
	if res.Err != nil {
		log.Printf("room %s: %v transitioning %s -> %s", r.dom.RoomID, res.Err, r.dom.GameState.Phase, target)
		return
	}
	r.dom.GameState = res.State
	r.broadcastGameState()
}

func (r *Room) recordStats() {
	if r.stats == nil || r.dom.GameState == nil {
		return
	}
	state := r.dom.GameState
	players := make([]domain.MatchPlayerSummary, len(r.dom.Players))
	for i, p := range r.dom.Players {
		players[i] = domain.MatchPlayerSummary{
			SessionID:   p.SessionID,
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			Role:        p.Role,
			Eliminated:  p.Eliminated,
		}
	}
	r.stats.RecordGameEnd(domain.MatchSummary{
		GameID:          state.GameID,
		RoomID:          r.dom.RoomID,
		Category:        state.Category,
		Winner:          state.Winner,
		DurationSeconds: int(time.Now().Unix() - state.StartedAt),
		Players:         players,
	})
}

// --- broadcast helpers ---

func (r *Room) broadcast(msg *Message) {
	for _, c := range r.clients {
		c.Send(msg)
	}
}

func (r *Room) broadcastRoomUpdate() {
	view := projection.RoomUpdate(r.dom)
	msg, err := NewMessage(MessageTypeRoomUpdate, view)
	if err != nil {
		return
	}
	r.broadcast(msg)
}

func (r *Room) broadcastGameState() {
	for sessionID, c := range r.clients {
		view := projection.GameStateFor(r.dom, sessionID)
		if view == nil {
			continue
		}
		msg, err := NewMessage(MessageTypeGameState, view)
		if err != nil {
			continue
		}
		c.Send(msg)
	}
}

// sendNullRoomUpdateTo tells a just-departed client it no longer belongs
// to this room: a room_update carrying a null room.
func (r *Room) sendNullRoomUpdateTo(c *Client) {
	msg, err := NewMessage(MessageTypeRoomUpdate, nil)
	if err != nil {
		return
	}
	c.Send(msg)
}

func (r *Room) sendGameStateTo(c *Client) {
	view := projection.GameStateFor(r.dom, c.SessionID())
	if view == nil {
		return
	}
	msg, err := NewMessage(MessageTypeGameState, view)
	if err != nil {
		return
	}
	c.Send(msg)
}
