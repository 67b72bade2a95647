package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"
)

type photoUploadRequest struct {
	Image string `json:"image"`
}

type photoItem struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// PhotosUpload stores a profile photo under the caller's namespace and
// returns its public URL.
func (a *App) PhotosUpload(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req photoUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Image) == "" {
		a.error(w, http.StatusBadRequest, "image is required")
		return
	}

	data, mimeType, err := a.Normalizer.Normalize(r.Context(), req.Image)
	if err != nil {
		a.error(w, http.StatusBadRequest, "could not decode image")
		return
	}

	key := fmt.Sprintf("%s/profile-%d.%s", userID, time.Now().UnixMilli(), photoExtension(mimeType))
	url, err := a.Objects.Upload(r.Context(), key, data, mimeType)
	if err != nil {
		a.Logger.Error().Err(err).Str("key", key).Msg("photos: upload failed")
		a.error(w, http.StatusInternalServerError, "failed to store photo")
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"url": url})
}

// PhotosList returns the caller's profile photos, newest first.
func (a *App) PhotosList(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	objects, err := a.Objects.List(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "failed to list photos")
		return
	}

	photos := []photoItem{}
	for _, obj := range objects {
		name := path.Base(obj.Key)
		if !strings.HasPrefix(name, "profile-") {
			continue
		}
		photos = append(photos, photoItem{
			Name:      name,
			URL:       obj.URL,
			Size:      obj.Size,
			CreatedAt: obj.LastModified,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"photos": photos})
}

func photoExtension(mimeType string) string {
	switch mimeType {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}
