package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/harlowdev/imposter-arena/internal/projection"
	"github.com/harlowdev/imposter-arena/internal/store"
)

// RoomsHandler serves the HTTP mirror of the get_rooms event for
// callers that haven't upgraded to the websocket transport yet.
type RoomsHandler struct {
	store *store.Store
}

func NewRoomsHandler(st *store.Store) *RoomsHandler {
	return &RoomsHandler{store: st}
}

func (h *RoomsHandler) List(w http.ResponseWriter, r *http.Request) {
	listings := projection.ListRooms(h.store.ListRooms())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"rooms": listings})
}
