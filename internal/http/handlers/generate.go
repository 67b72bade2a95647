package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rdpaiva/future-self/internal/domain"
	"github.com/rdpaiva/future-self/internal/vision"
)

type generateRequest struct {
	Image  string   `json:"image"`
	Dreams []string `json:"dreams"`
}

type generateResponse struct {
	GeneratedImage string `json:"generatedImage"`
	Model          string `json:"model"`
}

// Generate runs one image edit. The dreams field carries prompt fragments,
// already resolved from category ids by the caller.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Image is required")
		return
	}

	result, err := a.Gateway.Generate(r.Context(), req.Image, req.Dreams)
	if err != nil {
		a.writeGenerateError(w, err)
		return
	}

	a.json(w, http.StatusOK, generateResponse{
		GeneratedImage: result.DataURL(),
		Model:          result.Model,
	})
}

func (a *App) writeGenerateError(w http.ResponseWriter, err error) {
	var verr *vision.Error
	if errors.As(err, &verr) {
		switch verr.Kind {
		case vision.FailValidation:
			switch {
			case errors.Is(err, domain.ErrMissingImage):
				a.error(w, http.StatusBadRequest, "Image is required")
			case errors.Is(err, domain.ErrNoDreams):
				a.error(w, http.StatusBadRequest, "At least one dream must be selected")
			default:
				a.error(w, http.StatusBadRequest, verr.Error())
			}
			return
		case vision.FailConfig:
			a.error(w, http.StatusInternalServerError, "API key not configured. Please set GOOGLE_API_KEY")
			return
		}
	}
	a.errorDetails(w, http.StatusInternalServerError, "Failed to generate image", err.Error())
}
