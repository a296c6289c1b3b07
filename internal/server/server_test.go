package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memescore/internal/api"
	"memescore/internal/config"
	"memescore/internal/llm"
	"memescore/internal/logging"
	"memescore/internal/narrative"
)

const validBody = `{"likes":1000,"comments":1000,"reposts":1000,"quotes":1000,"views":1000,"followers":1000,"tip_count":0,"tip_amount":0}`

func newTestRouter(t *testing.T, gen narrative.Generator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logging.Nop()
	composer := narrative.NewComposer(gen, narrative.Korean, 200*time.Millisecond, logger)
	return NewRouter(logger, NewAnalyzeHandler(composer, logger))
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(t, nil), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, api.ServiceName, body["service"])
	assert.Equal(t, false, body["openai_available"])

	w = do(t, newTestRouter(t, llm.NewFake("x")), http.MethodGet, "/health", "")
	assert.Equal(t, true, decodeBody(t, w)["openai_available"])
}

func TestAnalyzeWithoutProvider(t *testing.T) {
	w := do(t, newTestRouter(t, nil), http.MethodPost, "/analyze", validBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp api.AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, narrative.Korean.Fallback, resp.Analysis)
	require.NotNil(t, resp.ScoreBreakdown)
	assert.Equal(t, 36.0, resp.ScoreBreakdown.EngagementQuality)
	assert.Equal(t, 15.0, resp.ScoreBreakdown.ViralityPotential)
	assert.Equal(t, 24.0, resp.ScoreBreakdown.CommunityStrength)
	assert.Equal(t, 0.0, resp.ScoreBreakdown.MonetizationHealth)
	require.NotNil(t, resp.BotScore)
	assert.Equal(t, 55.0, *resp.BotScore)
}

func TestAnalyzeResponseShape(t *testing.T) {
	w := do(t, newTestRouter(t, nil), http.MethodPost, "/analyze", validBody)
	body := decodeBody(t, w)
	assert.ElementsMatch(t, []string{"success", "analysis", "score_breakdown", "bot_score"}, keys(body))
	breakdown, ok := body["score_breakdown"].(map[string]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"engagement_quality", "virality_potential", "community_strength", "monetization_health"}, keys(breakdown))
}

func TestAnalyzeWithProvider(t *testing.T) {
	gen := llm.NewFake("▪ 좋은 활동입니다.")
	w := do(t, newTestRouter(t, gen), http.MethodPost, "/analyze", validBody)
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, narrative.Korean.Header+"▪ 좋은 활동입니다."+narrative.Korean.Disclaimer, resp.Analysis)

	prompts := gen.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "⚠️ 봇 의심 점수: 55.0/100")
}

func TestAnalyzeProviderFailureStillSucceeds(t *testing.T) {
	gen := &llm.Fake{Error: errors.New("rate limited")}
	w := do(t, newTestRouter(t, gen), http.MethodPost, "/analyze", validBody)
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, narrative.Korean.ErrorFallback, resp.Analysis)
	require.NotNil(t, resp.BotScore)
	assert.Equal(t, 55.0, *resp.BotScore)
}

func TestAnalyzeMissingField(t *testing.T) {
	body := `{"likes":1,"comments":1,"reposts":1,"quotes":1,"followers":1,"tip_count":1,"tip_amount":1}`
	w := do(t, newTestRouter(t, nil), http.MethodPost, "/analyze", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Missing required field: views", resp["error"])
	assert.NotContains(t, resp, "score_breakdown")
	assert.NotContains(t, resp, "bot_score")
}

func TestAnalyzeNonNumericField(t *testing.T) {
	body := strings.Replace(validBody, `"views":1000`, `"views":"a lot"`, 1)
	w := do(t, newTestRouter(t, nil), http.MethodPost, "/analyze", body)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["error"], "views")
}

func TestAnalyzeInvalidBody(t *testing.T) {
	for _, body := range []string{"", "[1,2]", "{not json"} {
		w := do(t, newTestRouter(t, nil), http.MethodPost, "/analyze", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
		assert.Equal(t, "Invalid request format", decodeBody(t, w)["error"])
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	r := newTestRouter(t, nil)
	first := do(t, r, http.MethodPost, "/analyze", validBody).Body.String()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, do(t, r, http.MethodPost, "/analyze", validBody).Body.String())
	}
}

func TestCORSAndRequestID(t *testing.T) {
	r := newTestRouter(t, nil)
	w := do(t, r, http.MethodOptions, "/analyze", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestMetricsRoute(t *testing.T) {
	r := newTestRouter(t, nil)
	do(t, r, http.MethodPost, "/analyze", validBody)
	w := do(t, r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `memescore_analyze_requests_total{status="success"}`)
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware(), RecoveryMiddleware(logging.Nop()))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := do(t, r, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decodeBody(t, w)["error"])
}

func TestStartStopsOnContextCancel(t *testing.T) {
	cfg := config.Default().Server
	cfg.Port = "0"
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Start(ctx, cfg, http.NotFoundHandler(), logging.Nop()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
