package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeujai/ScenarioCreativeAutomation/internal/domain"
)

// OpenAIOptions configures the moderation client.
type OpenAIOptions struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// OpenAI checks brief texts against the OpenAI moderation endpoint. Every
// user-authored string in the brief is checked; any flagged category becomes
// a violation.
type OpenAI struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewOpenAI constructs the moderation client.
func NewOpenAI(opts OpenAIOptions) *OpenAI {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &OpenAI{
		apiKey:     opts.APIKey,
		baseURL:    baseURL,
		httpClient: client,
		logger:     opts.Logger.With().Str("component", "moderation").Logger(),
	}
}

type moderationRequest struct {
	Input []string `json:"input"`
}

type moderationResponse struct {
	Results []struct {
		Flagged    bool            `json:"flagged"`
		Categories map[string]bool `json:"categories"`
	} `json:"results"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Check moderates the brief. A transport or API failure is returned as an
// error so the caller can decide whether to block; flagged content yields
// Passed=false with the offending categories.
func (o *OpenAI) Check(ctx context.Context, brief *domain.Brief) (Result, error) {
	texts := briefTexts(brief)

	payload, err := json.Marshal(moderationRequest{Input: texts})
	if err != nil {
		return Result{}, fmt.Errorf("moderation: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/moderations", bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("moderation: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("moderation: call api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{}, fmt.Errorf("moderation: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("moderation: api status %d", resp.StatusCode)
	}

	var parsed moderationResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Result{}, fmt.Errorf("moderation: decode response: %w", err)
	}
	if parsed.Error != nil {
		return Result{}, fmt.Errorf("moderation: api error: %s", parsed.Error.Message)
	}

	result := Result{Passed: true}
	for i, r := range parsed.Results {
		if !r.Flagged {
			continue
		}
		result.Passed = false
		for category, hit := range r.Categories {
			if hit {
				result.Violations = append(result.Violations, fmt.Sprintf("%s: %s", category, truncate(textAt(texts, i), 50)))
			}
		}
	}
	if !result.Passed {
		o.logger.Warn().Strs("violations", result.Violations).Msg("brief flagged by moderation")
	}
	return result, nil
}

func textAt(texts []string, i int) string {
	if i >= 0 && i < len(texts) {
		return texts[i]
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ Service = (*OpenAI)(nil)
