package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rdpaiva/future-self/internal/infra"
	"github.com/rdpaiva/future-self/internal/middleware"
	"github.com/rdpaiva/future-self/internal/session"
	"github.com/rdpaiva/future-self/internal/storage"
	"github.com/rdpaiva/future-self/internal/store"
	"github.com/rdpaiva/future-self/internal/vision"
)

// App holds the shared dependencies for all HTTP handlers.
type App struct {
	Gateway    *vision.Gateway
	Normalizer *vision.Normalizer
	Store      *store.Manifestations
	Objects    storage.ObjectStore
	Handoff    session.HandoffSlot
	Logger     infra.Logger

	StorageBaseURL string
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]string{"error": msg})
}

func (a *App) errorDetails(w http.ResponseWriter, code int, msg, details string) {
	a.json(w, code, map[string]string{"error": msg, "details": details})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}
