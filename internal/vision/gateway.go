package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rdpaiva/future-self/internal/domain"
	"github.com/rdpaiva/future-self/internal/genai"
	"github.com/rdpaiva/future-self/internal/infra"
)

// ImageEditor is the upstream generation capability the gateway depends on.
type ImageEditor interface {
	EditImage(ctx context.Context, req genai.EditRequest) (*genai.EditedImage, error)
	Model() string
}

// Result is one successful generation: the edited image plus the model used.
type Result struct {
	ImageData []byte
	MimeType  string
	Model     string
}

// DataURL re-encodes the result in the same embedded convention used for
// inputs.
func (r *Result) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", r.MimeType, base64.StdEncoding.EncodeToString(r.ImageData))
}

// Gateway validates a generation request, normalizes the source image, builds
// the instruction, and performs exactly one upstream call. No retries, no
// caching; a failed attempt has no side effects, so resubmission is always
// safe.
type Gateway struct {
	editor     ImageEditor
	normalizer *Normalizer
	logger     infra.Logger
}

func NewGateway(editor ImageEditor, normalizer *Normalizer, logger infra.Logger) *Gateway {
	return &Gateway{editor: editor, normalizer: normalizer, logger: logger}
}

// Generate turns (photo reference, ordered dream fragments) into a Result.
// Failures are always a *Error whose Kind distinguishes caller mistakes,
// operator misconfiguration, input-image trouble, and upstream emptiness.
func (g *Gateway) Generate(ctx context.Context, source string, fragments []string) (*Result, error) {
	if strings.TrimSpace(source) == "" {
		return nil, &Error{Kind: FailValidation, Err: domain.ErrMissingImage}
	}
	if len(fragments) == 0 {
		return nil, &Error{Kind: FailValidation, Err: domain.ErrNoDreams}
	}

	requestID := uuid.NewString()

	data, mimeType, err := g.normalizer.Normalize(ctx, source)
	if err != nil {
		g.logger.Warn().Err(err).Str("request_id", requestID).Msg("vision: source image normalization failed")
		return nil, &Error{Kind: FailNormalization, Err: err}
	}

	edited, err := g.editor.EditImage(ctx, genai.EditRequest{
		Instruction: BuildPrompt(fragments),
		ImageData:   data,
		MimeType:    mimeType,
		RequestID:   requestID,
	})
	if err != nil {
		if errors.Is(err, genai.ErrMissingAPIKey) {
			g.logger.Error().Err(err).Str("request_id", requestID).Msg("vision: generation credential missing")
			return nil, &Error{Kind: FailConfig, Err: err}
		}
		g.logger.Error().Err(err).Str("request_id", requestID).Str("model", g.editor.Model()).Msg("vision: upstream generation failed")
		return nil, &Error{Kind: FailUpstream, Err: err}
	}

	g.logger.Info().
		Str("request_id", requestID).
		Str("model", g.editor.Model()).
		Int("dreams", len(fragments)).
		Int("bytes", len(edited.Data)).
		Msg("vision: generation succeeded")

	return &Result{
		ImageData: edited.Data,
		MimeType:  edited.MimeType,
		Model:     g.editor.Model(),
	}, nil
}
