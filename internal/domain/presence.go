package domain

// PresenceIndex maps an authenticated userId to the set of sessionIds it
// currently has connected. Empty entries are removed eagerly so that
// len(index[userId]) == 0 is equivalent to "no entry". Callers serialize
// access (see the store package); this type itself holds no lock.
type PresenceIndex map[string]map[string]struct{}

func NewPresenceIndex() PresenceIndex {
	return make(PresenceIndex)
}

// Add registers sessionID under userID and reports whether this was the
// 0→1 transition (the caller should emit friend_online on true).
func (idx PresenceIndex) Add(userID, sessionID string) bool {
	set, ok := idx[userID]
	if !ok {
		set = make(map[string]struct{})
		idx[userID] = set
	}
	wasEmpty := len(set) == 0
	set[sessionID] = struct{}{}
	return wasEmpty
}

// Remove unregisters sessionID and reports whether this was the 1→0
// transition (the caller should emit friend_offline on true).
func (idx PresenceIndex) Remove(userID, sessionID string) bool {
	set, ok := idx[userID]
	if !ok {
		return false
	}
	delete(set, sessionID)
	if len(set) == 0 {
		delete(idx, userID)
		return true
	}
	return false
}

func (idx PresenceIndex) Count(userID string) int {
	return len(idx[userID])
}
