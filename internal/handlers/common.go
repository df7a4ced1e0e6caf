package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/screenguide/screenguide/internal/guide"
	"github.com/screenguide/screenguide/internal/models"
	"github.com/screenguide/screenguide/internal/storage"
)

type Handler struct {
	sessionStore *storage.SessionStore
	guideService *guide.Service
}

func New(store *storage.SessionStore, service *guide.Service) *Handler {
	return &Handler{
		sessionStore: store,
		guideService: service,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Session helpers. The id "latest" resolves to the most recently analyzed
// session, a convenience for stateless clients; it is non-deterministic when
// analyses race.
func (h *Handler) getSessionOrError(w http.ResponseWriter, sessionID string) (*models.Session, bool) {
	var session *models.Session
	var exists bool

	if sessionID == "latest" {
		session, exists = h.sessionStore.Latest()
	} else {
		session, exists = h.sessionStore.Get(sessionID)
	}
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}
