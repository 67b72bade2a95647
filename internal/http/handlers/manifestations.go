package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"github.com/rdpaiva/future-self/internal/domain"
	"github.com/rdpaiva/future-self/internal/storage"
	"github.com/rdpaiva/future-self/pkg/zip"
)

type manifestationCreateRequest struct {
	OriginalImage  string   `json:"originalImage"`
	GeneratedImage string   `json:"generatedImage"`
	Dreams         []string `json:"dreams"`
}

func (a *App) ManifestationsCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req manifestationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}

	record, err := a.Store.Create(r.Context(), userID, req.OriginalImage, req.GeneratedImage, req.Dreams)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingImage):
			a.error(w, http.StatusBadRequest, "both images are required")
		case errors.Is(err, domain.ErrNoDreams):
			a.error(w, http.StatusBadRequest, "at least one dream must be selected")
		default:
			a.error(w, http.StatusInternalServerError, "failed to save manifestation")
		}
		return
	}
	a.json(w, http.StatusCreated, record)
}

func (a *App) ManifestationsList(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	items, err := a.Store.List(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "failed to list manifestations")
		return
	}
	if items == nil {
		items = []domain.Manifestation{}
	}
	a.json(w, http.StatusOK, map[string]any{"manifestations": items})
}

func (a *App) ManifestationsDelete(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id := chi.URLParam(r, "id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "id required")
		return
	}

	record, err := a.Store.Get(r.Context(), id)
	if err != nil || record.UserID != userID {
		a.error(w, http.StatusNotFound, "manifestation not found")
		return
	}
	if err := a.Store.Delete(r.Context(), id); err != nil {
		a.error(w, http.StatusInternalServerError, "failed to delete manifestation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ManifestationsExport streams a zip of the caller's stored images. Objects
// that cannot be fetched are skipped with a log line rather than failing the
// whole archive.
func (a *App) ManifestationsExport(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	items, err := a.Store.List(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "failed to list manifestations")
		return
	}

	var assets []zip.Asset
	for _, item := range items {
		for _, ref := range []struct{ label, url string }{
			{"original", item.OriginalImageURL},
			{"generated", item.GeneratedImageURL},
		} {
			label, url := ref.label, ref.url
			key, err := storage.KeyFromURL(a.StorageBaseURL, url)
			if err != nil {
				continue
			}
			data, err := a.Objects.Fetch(r.Context(), key)
			if err != nil {
				a.Logger.Warn().Err(err).Str("key", key).Msg("export: skipping unreadable object")
				continue
			}
			assets = append(assets, zip.Asset{
				Filename: fmt.Sprintf("%s-%s%s", item.ID, label, path.Ext(key)),
				Data:     data,
			})
		}
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", "attachment; filename=manifestations.zip")
	_, _ = w.Write(zip.ArchiveAssets(assets))
}
