package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rdpaiva/future-self/internal/infra"
)

// Sampling parameters are fixed for every request: a moderate temperature for
// creative variance, nucleus/top-k truncation, and an output budget sized for
// one image-bearing response.
const (
	samplingTemperature = 0.8
	samplingTopK        = 40
	samplingTopP        = 0.95
	maxOutputTokens     = 8192
)

var (
	// ErrMissingAPIKey means no API key was available from the environment or
	// the credential store. Operator-correctable, never user-correctable.
	ErrMissingAPIKey = errors.New("gemini api key not configured")
	// ErrNoCandidates means the model returned an empty candidate list.
	ErrNoCandidates = errors.New("no image generated")
	// ErrNoImageData means the first candidate carried no image-bearing part.
	ErrNoImageData = errors.New("no image data in response")
)

// KeyFunc resolves the API key at request time, letting operators rotate the
// stored key without a restart.
type KeyFunc func(ctx context.Context) (string, error)

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	KeyFunc    KeyFunc
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client is a facade over the Gemini generateContent API scoped to the one
// capability this service needs: editing a photo with a text instruction and
// extracting the returned image bytes.
type Client struct {
	apiKey     string
	keyFunc    KeyFunc
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *infra.Logger
}

// EditRequest carries a normalized photo plus the instruction text.
type EditRequest struct {
	Instruction string
	ImageData   []byte
	MimeType    string
	RequestID   string
}

// EditedImage is the extracted image part of a successful response.
type EditedImage struct {
	Data     []byte
	MimeType string
	Width    int
	Height   int
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts,omitempty"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	TopK            int     `json:"topK,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiGenerateContentRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiGenerateContentResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// NewClient constructs a Gemini client with sane defaults. Callers may provide
// a nil HTTP client; a reusable one with a generous timeout will be created.
func NewClient(opts Options) *Client {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	model := opts.Model
	if model == "" {
		model = "gemini-3-pro-image-preview"
	}

	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}

	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		keyFunc:    opts.KeyFunc,
		baseURL:    baseURL,
		model:      model,
		httpClient: client,
		logger:     logger,
	}
}

// Model returns the configured Gemini model identifier.
func (c *Client) Model() string {
	return c.model
}

// EditImage submits one multimodal request (instruction text plus inline photo)
// and extracts the first image-bearing part of the first candidate. A single
// attempt, no retries; callers decide whether to resubmit.
func (c *Client) EditImage(ctx context.Context, req EditRequest) (*EditedImage, error) {
	key, err := c.resolveKey(ctx)
	if err != nil {
		return nil, err
	}

	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{
			{
				Role: "user",
				Parts: []geminiPart{
					{Text: req.Instruction},
					{InlineData: &geminiInlineData{
						MimeType: req.MimeType,
						Data:     base64.StdEncoding.EncodeToString(req.ImageData),
					}},
				},
			},
		},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     samplingTemperature,
			TopK:            samplingTopK,
			TopP:            samplingTopP,
			MaxOutputTokens: maxOutputTokens,
		},
	}

	var response geminiGenerateContentResponse
	path := fmt.Sprintf("/models/%s:generateContent", url.PathEscape(c.model))
	if err := c.invoke(ctx, key, path, payload, &response); err != nil {
		return nil, err
	}

	if len(response.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	candidate := response.Candidates[0]
	for _, part := range candidate.Content.Parts {
		if part.InlineData == nil || !strings.HasPrefix(part.InlineData.MimeType, "image/") {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
		if err != nil {
			return nil, fmt.Errorf("decode inline data: %w", err)
		}
		if len(data) == 0 {
			continue
		}
		width, height := decodeImageDimensions(data)
		c.logger.Debug().
			Str("request_id", req.RequestID).
			Str("model", c.model).
			Str("mime", part.InlineData.MimeType).
			Int("bytes", len(data)).
			Msg("genai: extracted edited image")
		return &EditedImage{
			Data:     data,
			MimeType: part.InlineData.MimeType,
			Width:    width,
			Height:   height,
		}, nil
	}

	return nil, ErrNoImageData
}

func (c *Client) resolveKey(ctx context.Context) (string, error) {
	if c.apiKey != "" {
		return c.apiKey, nil
	}
	if c.keyFunc != nil {
		key, err := c.keyFunc(ctx)
		if err != nil {
			return "", fmt.Errorf("resolve api key: %w", err)
		}
		if strings.TrimSpace(key) != "" {
			return strings.TrimSpace(key), nil
		}
	}
	return "", ErrMissingAPIKey
}

func (c *Client) invoke(ctx context.Context, key, path string, payload any, out any) error {
	endpoint := c.baseURL + path
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	q := req.URL.Query()
	q.Set("key", key)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("invoke gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr geminiErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("gemini status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		data, _ := io.ReadAll(resp.Body)
		if len(data) > 0 {
			return fmt.Errorf("gemini status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
		}
		return fmt.Errorf("gemini status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode gemini response: %w", err)
	}
	return nil
}
