package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

type preselectRequest struct {
	SessionID string `json:"sessionId"`
	Image     string `json:"image"`
}

// PreselectPut writes the session handoff slot: a photo-management screen
// stores an already-chosen image URL so the workflow can start at dream
// selection. Write-once per session; a second write overwrites.
func (a *App) PreselectPut(w http.ResponseWriter, r *http.Request) {
	var req preselectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if strings.TrimSpace(req.SessionID) == "" || strings.TrimSpace(req.Image) == "" {
		a.error(w, http.StatusBadRequest, "sessionId and image are required")
		return
	}
	if err := a.Handoff.Put(r.Context(), req.SessionID, req.Image); err != nil {
		a.error(w, http.StatusInternalServerError, "failed to store handoff")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PreselectTake reads and clears the slot. A second read returns 404.
func (a *App) PreselectTake(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		a.error(w, http.StatusBadRequest, "sessionId is required")
		return
	}
	image, ok, err := a.Handoff.Take(r.Context(), sessionID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "failed to read handoff")
		return
	}
	if !ok {
		a.error(w, http.StatusNotFound, "no preselected image")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"image": image})
}
