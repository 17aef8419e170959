package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// openAISizes is the fixed set of sizes the Images API accepts. The request
// hint is snapped to the closest orientation match.
var openAISizes = map[string]struct{}{
	"1024x1024": {},
	"1792x1024": {},
	"1024x1792": {},
}

// OpenAIOptions controls how the DALL-E engine is configured.
type OpenAIOptions struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// OpenAI generates hero images through the OpenAI Images API.
type OpenAI struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewOpenAI constructs the engine. Without an API key the engine reports
// itself unavailable.
func NewOpenAI(opts OpenAIOptions) *OpenAI {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := opts.Model
	if model == "" {
		model = "dall-e-3"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}
	return &OpenAI{
		apiKey:     opts.APIKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: client,
		logger:     opts.Logger.With().Str("engine", "openai").Logger(),
	}
}

func (o *OpenAI) Name() string { return "openai:" + o.model }

func (o *OpenAI) Available() bool { return o.apiKey != "" }

type openAIImageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	Size           string `json:"size"`
	Quality        string `json:"quality,omitempty"`
	N              int    `json:"n"`
	ResponseFormat string `json:"response_format,omitempty"`
}

type openAIImageResponse struct {
	Data []struct {
		URL     string `json:"url"`
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate requests one image and fetches it from the returned URL (or
// decodes the inline payload when the API returns base64).
func (o *OpenAI) Generate(ctx context.Context, prompt string, size Size) (image.Image, error) {
	if !o.Available() {
		return nil, fmt.Errorf("openai: no api key configured")
	}

	payload, err := json.Marshal(openAIImageRequest{
		Model:   o.model,
		Prompt:  prompt,
		Size:    snapOpenAISize(size),
		Quality: "standard",
		N:       1,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/images/generations", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: call images api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("openai: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai: images api status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed openAIImageResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("openai: decode response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("openai: api error: %s", parsed.Error.Message)
	}
	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("openai: no image returned")
	}

	if b64 := parsed.Data[0].B64JSON; b64 != "" {
		raw, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, fmt.Errorf("openai: decode inline data: %w", err)
		}
		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("openai: decode image: %w", err)
		}
		return img, nil
	}

	url := parsed.Data[0].URL
	if url == "" {
		return nil, fmt.Errorf("openai: no image url returned")
	}
	return o.fetchImage(ctx, url)
}

func (o *OpenAI) fetchImage(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("openai: build image fetch: %w", err)
	}
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai: fetch image status %d", resp.StatusCode)
	}
	img, _, err := image.Decode(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("openai: decode fetched image: %w", err)
	}
	return img, nil
}

// snapOpenAISize maps an arbitrary hint to one of the supported sizes,
// keeping the orientation.
func snapOpenAISize(size Size) string {
	candidate := fmt.Sprintf("%dx%d", size.Width, size.Height)
	if _, ok := openAISizes[candidate]; ok {
		return candidate
	}
	switch {
	case size.Width > size.Height:
		return "1792x1024"
	case size.Height > size.Width:
		return "1024x1792"
	default:
		return "1024x1024"
	}
}

var _ Service = (*OpenAI)(nil)
