package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/screenguide/screenguide/internal/guide"
	"github.com/screenguide/screenguide/internal/models"
	"github.com/screenguide/screenguide/internal/overlay"
)

func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, h.sessionStore.All())
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleSessionDetail routes /api/sessions/{id} and its sub-resources:
// {id}/act, {id}/screenshot and {id}/highlight.
func (h *Handler) HandleSessionDetail(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	sessionID, sub, _ := strings.Cut(path, "/")

	if sessionID == "" {
		h.writeError(w, "Session id required", http.StatusBadRequest)
		return
	}

	switch sub {
	case "":
		h.handleSessionGet(w, r, sessionID)
	case "act":
		h.handleAct(w, r, sessionID)
	case "screenshot":
		h.handleScreenshot(w, r, sessionID)
	case "highlight":
		h.handleHighlight(w, r, sessionID)
	default:
		h.writeError(w, "Not found", http.StatusNotFound)
	}
}

func (h *Handler) handleSessionGet(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	session, ok := h.getSessionOrError(w, sessionID)
	if !ok {
		return
	}
	h.writeJSON(w, session)
}

// handleAct runs phase 2: generate instruction steps for one chosen action
// against the session's cached screenshot.
func (h *Handler) handleAct(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if request.Action == "" {
		h.writeError(w, "action is required", http.StatusBadRequest)
		return
	}

	session, ok := h.getSessionOrError(w, sessionID)
	if !ok {
		return
	}

	steps, err := h.guideService.Act(r.Context(), session.ID, request.Action)
	if err != nil {
		if errors.Is(err, guide.ErrSessionNotFound) {
			h.writeError(w, "Session not found", http.StatusNotFound)
			return
		}
		h.writeError(w, "Instruction generation failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	h.writeJSON(w, map[string]any{
		"session_id": session.ID,
		"action":     request.Action,
		"steps":      steps,
	})
}

func (h *Handler) handleScreenshot(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	session, ok := h.getSessionOrError(w, sessionID)
	if !ok {
		return
	}
	if session.Capture == nil || len(session.Capture.Data) == 0 {
		h.writeError(w, "Session has no screenshot", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(session.Capture.Data)
}

// handleHighlight renders the screenshot with a highlight ring at the given
// point, so clients can show the marker without drawing it themselves.
func (h *Handler) handleHighlight(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var point models.Point
	if err := json.NewDecoder(r.Body).Decode(&point); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	session, ok := h.getSessionOrError(w, sessionID)
	if !ok {
		return
	}
	if session.Capture == nil || len(session.Capture.Data) == 0 {
		h.writeError(w, "Session has no screenshot", http.StatusNotFound)
		return
	}

	marked, err := overlay.MarkPoint(session.Capture.Data, point)
	if err != nil {
		h.writeError(w, "Failed to render highlight: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(marked)
}
