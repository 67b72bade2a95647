package handlers

import (
	"net/http"

	"github.com/rdpaiva/future-self/internal/domain"
)

// Dreams serves the static catalog so clients render titles and icons from
// the same source the prompt builder uses.
func (a *App) Dreams(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"dreams": domain.Dreams})
}
