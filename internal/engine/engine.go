// Package engine is the pure game core: validators, reducers, vote
// tallying, turn-order selection, word selection, and the win-condition
// check. Every function here is deterministic given its inputs, including
// an injected randomness source — nothing reads the clock or the PRNG
// from ambient state, so these functions are hermetically testable.
package engine

import (
	"sort"
	"strings"

	"github.com/harlowdev/imposter-arena/internal/domain"
)

// Rand returns a float in [0,1), exactly like math/rand.Float64. Production
// wiring passes the system PRNG; tests pass a scripted sequence.
type Rand func() float64

// ImposterFirstSpeakerWeight biases turn-order toward putting the
// imposter first, same weight for both modes.
const ImposterFirstSpeakerWeight = 0.5

// ValidateVote checks a submit_vote command against room/game state: game
// must exist, phase must be VOTING, voter must not equal target, target
// must exist and not be eliminated, and the voter must not be eliminated
// either.
func ValidateVote(room *domain.Room, voter, target string) error {
	if room.GameState == nil {
		return ErrGameNotStarted
	}
	if room.GameState.Phase != domain.PhaseVoting {
		return ErrWrongPhase
	}
	if voter == target {
		return ErrCannotVoteSelf
	}
	targetPlayer := room.FindPlayer(target)
	if targetPlayer == nil || targetPlayer.Eliminated {
		return ErrInvalidTarget
	}
	voterPlayer := room.FindPlayer(voter)
	if voterPlayer == nil || voterPlayer.Eliminated {
		return ErrInvalidTarget
	}
	return nil
}

// ApplyVote returns a new votes mapping equal to state.Votes with
// votes[voter] = target. It does not mutate state.
func ApplyVote(state *domain.GameState, voter, target string) map[string]string {
	next := make(map[string]string, len(state.Votes)+1)
	for k, v := range state.Votes {
		next[k] = v
	}
	next[voter] = target
	return next
}

// CalculateEliminated tallies votes and returns the sessionId with a
// strictly greater count than the runner-up, or "" if there are no votes
// or the top count is tied.
func CalculateEliminated(votes map[string]string) string {
	if len(votes) == 0 {
		return ""
	}

	tally := make(map[string]int, len(votes))
	for _, target := range votes {
		tally[target]++
	}

	type count struct {
		sessionID string
		votes     int
	}
	counts := make([]count, 0, len(tally))
	for id, n := range tally {
		counts = append(counts, count{id, n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].votes != counts[j].votes {
			return counts[i].votes > counts[j].votes
		}
		return counts[i].sessionID < counts[j].sessionID
	})

	if len(counts) == 1 || counts[0].votes > counts[1].votes {
		return counts[0].sessionID
	}
	return ""
}

// WordSelection is the outcome of selectWordsForMode.
type WordSelection struct {
	CitizenWord  string
	ImposterWord string // only set in BLIND mode
}

// SelectWordsForMode draws the round's word(s) from wordList. CLASSIC
// draws one word uniformly; BLIND draws a citizen word and then an
// imposter word that differs by index, with length-1/length-2 edge cases
// handled explicitly rather than via a retry loop that could spin forever
// on a scripted rand sequence.
func SelectWordsForMode(mode domain.GameMode, wordList []string, rand Rand) WordSelection {
	citizenIdx := int(rand() * float64(len(wordList)))
	citizenIdx = clampIndex(citizenIdx, len(wordList))
	citizenWord := wordList[citizenIdx]

	if mode == domain.ModeClassic {
		return WordSelection{CitizenWord: citizenWord}
	}

	switch len(wordList) {
	case 1:
		return WordSelection{CitizenWord: citizenWord, ImposterWord: citizenWord}
	case 2:
		otherIdx := 1 - citizenIdx
		return WordSelection{CitizenWord: citizenWord, ImposterWord: wordList[otherIdx]}
	default:
		imposterIdx := citizenIdx
		for imposterIdx == citizenIdx {
			imposterIdx = clampIndex(int(rand()*float64(len(wordList))), len(wordList))
		}
		return WordSelection{CitizenWord: citizenWord, ImposterWord: wordList[imposterIdx]}
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// SelectTurnOrder picks the first speaker by weighted sampling (the
// imposter is under-weighted by ImposterFirstSpeakerWeight so they are
// less likely, but not forbidden, to go first) and appends the rest in an
// unbiased Fisher-Yates shuffle driven by rand.
func SelectTurnOrder(players []*domain.Player, imposterID string, rand Rand) []string {
	ids := make([]string, len(players))
	weights := make([]float64, len(players))
	total := 0.0
	for i, p := range players {
		ids[i] = p.SessionID
		w := 1.0
		if p.SessionID == imposterID {
			w = ImposterFirstSpeakerWeight
		}
		weights[i] = w
		total += w
	}

	firstIdx := weightedPick(weights, total, rand())
	first := ids[firstIdx]

	rest := make([]string, 0, len(ids)-1)
	for i, id := range ids {
		if i != firstIdx {
			rest = append(rest, id)
		}
	}
	shuffle(rest, rand)

	return append([]string{first}, rest...)
}

func weightedPick(weights []float64, total float64, r float64) int {
	target := r * total
	for i, w := range weights {
		target -= w
		if target <= 0 {
			return i
		}
	}
	return len(weights) - 1
}

// shuffle is an unbiased Fisher-Yates shuffle driven by rand, used in
// place of the biased rand()-0.5 comparator (see DESIGN.md: any
// unbiased shuffle is permitted here).
func shuffle(ids []string, rand Rand) {
	for i := len(ids) - 1; i > 0; i-- {
		j := int(rand() * float64(i+1))
		j = clampIndex(j, i+1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}

// TransitionResult is the outcome of ApplyPhaseTransition.
type TransitionResult struct {
	State *domain.GameState
	Err   error
}

// ApplyPhaseTransition returns a new GameState with phase = targetPhase,
// phaseTimeLeft reset, and phase-specific resets applied. It never
// mutates state.
func ApplyPhaseTransition(state *domain.GameState, targetPhase domain.Phase, d Durations) TransitionResult {
	if !CanTransition(state.Phase, targetPhase) {
		return TransitionResult{Err: ErrInvalidTransition}
	}

	next := state.Clone()
	next.Phase = targetPhase
	next.PhaseTimeLeft = GetPhaseDuration(targetPhase, d)

	switch targetPhase {
	case domain.PhaseVoting:
		next.Votes = make(map[string]string)
	case domain.PhaseHintRound:
		next.CurrentTurnIndex = 0
		next.TurnTimeLeft = d.HintTurn
	case domain.PhaseGameOver:
		// winner is already set by the caller before requesting this
		// transition; nothing else to reset.
	}

	return TransitionResult{State: next}
}

// CheckWinCondition evaluates the room's current GameState. Citizens win
// iff the imposter is eliminated; the imposter wins iff at most one
// citizen remains standing. "" means no side has won yet.
func CheckWinCondition(room *domain.Room) domain.Winner {
	state := room.GameState
	if state == nil {
		return ""
	}

	imposter := room.FindPlayer(state.ImposterSessionID)
	if imposter != nil && imposter.Eliminated {
		return domain.WinnerCitizens
	}

	aliveCitizens := 0
	for _, p := range room.Players {
		if p.SessionID == state.ImposterSessionID {
			continue
		}
		if !p.Eliminated {
			aliveCitizens++
		}
	}
	if aliveCitizens <= 1 {
		return domain.WinnerImposter
	}

	return ""
}

// NormalizeHint truncates to 50 chars and maps an empty trimmed string to
// the "(Empty)" sentinel.
func NormalizeHint(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "(Empty)"
	}
	if len(trimmed) > 50 {
		trimmed = trimmed[:50]
	}
	return trimmed
}

// HintEqualsSecretWord reports whether hint matches the citizen word,
// case-insensitively, before normalization.
func HintEqualsSecretWord(hint, citizenWord string) bool {
	return strings.EqualFold(strings.TrimSpace(hint), citizenWord)
}
