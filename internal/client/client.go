package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"memescore/internal/api"
	"memescore/internal/logging"
	"memescore/internal/model"
)

const (
	DefaultBaseURL = "http://localhost:4100"
	DefaultTimeout = 20 * time.Second

	maxResponseBytes = 1 << 20
)

// HTTPClient talks to a running analyzer. One request per call, no retries.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// StatusError is returned when the analyzer answers with success=false.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("analyzer status %d: %s", e.StatusCode, e.Message)
}

// Health calls GET /health.
func (c *HTTPClient) Health(ctx context.Context) (api.HealthResponse, error) {
	var out api.HealthResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return out, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, fmt.Errorf("health: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return out, &StatusError{StatusCode: resp.StatusCode, Message: resp.Status}
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return out, fmt.Errorf("health: decode: %w", err)
	}
	return out, nil
}

// Analyze calls POST /analyze with the given counters.
func (c *HTTPClient) Analyze(ctx context.Context, in model.EngagementInput) (api.AnalyzeResponse, error) {
	return c.AnalyzeRaw(ctx, api.AnalyzeRequestFromInput(in))
}

// AnalyzeRaw posts a prepared body, which may deliberately omit fields.
func (c *HTTPClient) AnalyzeRaw(ctx context.Context, body api.AnalyzeRequest) (api.AnalyzeResponse, error) {
	var out api.AnalyzeResponse
	payload, err := json.Marshal(body)
	if err != nil {
		return out, fmt.Errorf("analyze: marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return out, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, fmt.Errorf("analyze: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		if resp.StatusCode >= 400 {
			return out, &StatusError{StatusCode: resp.StatusCode, Message: resp.Status}
		}
		return out, fmt.Errorf("analyze: decode: %w", err)
	}
	if resp.StatusCode >= 400 || !out.Success {
		return out, &StatusError{StatusCode: resp.StatusCode, Message: out.Error}
	}
	if out.ScoreBreakdown == nil || out.BotScore == nil {
		return out, errors.New("analyze: response missing scores")
	}
	return out, nil
}

// CreatorStats are a creator's 7-day totals as the dashboard backend keeps them.
type CreatorStats struct {
	Likes     float64
	Replies   float64
	Reposts   float64
	Quotes    float64
	Views     float64
	Followers float64
	TipCount  float64
	TipAmount string // wei, decimal string
}

// CreatorAnalysis is the part of an analysis the dashboard stores.
type CreatorAnalysis struct {
	Analysis       string
	ScoreBreakdown model.Categories
	BotScore       float64
}

// AnalyzeCreatorStats is best effort: any failure is logged and yields nil,
// so callers can render the rest of the page without the analysis.
func (c *HTTPClient) AnalyzeCreatorStats(ctx context.Context, stats CreatorStats) *CreatorAnalysis {
	eth, err := WeiToEth(stats.TipAmount)
	if err != nil {
		c.logger.WithError(err).Warn("analyzer call skipped: bad tip amount")
		return nil
	}
	resp, err := c.Analyze(ctx, model.EngagementInput{
		Likes:     stats.Likes,
		Comments:  stats.Replies,
		Reposts:   stats.Reposts,
		Quotes:    stats.Quotes,
		Views:     stats.Views,
		Followers: stats.Followers,
		TipCount:  stats.TipCount,
		TipAmount: eth,
	})
	if err != nil {
		c.logger.WithError(err).Warn("analyzer call failed; continuing without analysis")
		return nil
	}
	return &CreatorAnalysis{
		Analysis:       resp.Analysis,
		ScoreBreakdown: *resp.ScoreBreakdown,
		BotScore:       *resp.BotScore,
	}
}
