package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

// Screenshots larger than this are rejected.
const maxUploadSize = 10 * 1024 * 1024

// HandleAnalyze accepts a screenshot (multipart form or raw image body) and
// runs phase 1 of the pipeline: identify the program, its current location
// and plausible next actions.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	imageData, err := h.readScreenshot(r)
	if err != nil {
		h.writeError(w, "Failed to read screenshot: "+err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.guideService.Analyze(r.Context(), imageData)
	if err != nil {
		h.writeError(w, "Analysis failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	response := map[string]any{
		"session_id": session.ID,
		"name":       session.Analysis.Name,
		"location":   session.Analysis.Location,
		"actions":    session.Analysis.Actions,
	}
	h.writeJSON(w, response)
}

func (h *Handler) readScreenshot(r *http.Request) ([]byte, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.Contains(contentType, "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			file, _, err = r.FormFile("files")
			if err != nil {
				return nil, err
			}
		}
		defer file.Close()
		return readLimited(file)
	}

	defer r.Body.Close()
	return readLimited(r.Body)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxUploadSize))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty image")
	}
	if len(data) >= maxUploadSize {
		return nil, errors.New("image too large (max 10MB)")
	}
	return data, nil
}
