package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"memescore/internal/api"
	"memescore/internal/logging"
	"memescore/internal/metrics"
	"memescore/internal/model"
	"memescore/internal/narrative"
)

// AnalyzeHandler serves /analyze and /health.
type AnalyzeHandler struct {
	composer *narrative.Composer
	logger   logging.Logger
}

func NewAnalyzeHandler(composer *narrative.Composer, logger logging.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{composer: composer, logger: logger}
}

func (h *AnalyzeHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{
		Status:          "ok",
		Service:         api.ServiceName,
		OpenAIAvailable: h.composer.Available(),
	})
}

func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	requestID := c.GetString(requestIDKey)

	var req api.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncAnalyze("bad_request")
		h.logger.WithFields(logging.Fields{
			"error":      err.Error(),
			"request_id": requestID,
		}).Warn("Invalid analyze body")
		c.JSON(http.StatusBadRequest, api.AnalyzeResponse{Success: false, Error: "Invalid request format"})
		return
	}

	in, err := req.Validate()
	if err != nil {
		var missing *api.MissingFieldError
		if errors.As(err, &missing) {
			metrics.IncAnalyze("missing_field")
			h.logger.WithFields(logging.Fields{
				"field":      missing.Field,
				"request_id": requestID,
			}).Warn("Analyze request missing field")
			c.JSON(http.StatusBadRequest, api.AnalyzeResponse{Success: false, Error: err.Error()})
			return
		}
		metrics.IncAnalyze("invalid_value")
		h.logger.WithFields(logging.Fields{
			"error":      err.Error(),
			"request_id": requestID,
		}).Error("Analyze request has non-numeric field")
		c.JSON(http.StatusInternalServerError, api.AnalyzeResponse{Success: false, Error: err.Error()})
		return
	}

	breakdown := model.ComputeBreakdown(in)
	botScore := model.ComputeBotScore(in)
	metrics.ObserveScores(breakdown.MemeScore, botScore)

	text, source := h.composer.Compose(c.Request.Context(), breakdown, in, botScore)

	metrics.IncAnalyze("success")
	h.logger.WithFields(logging.Fields{
		"request_id":       requestID,
		"meme_score":       breakdown.MemeScore,
		"bot_score":        botScore,
		"narrative_source": string(source),
	}).Info("Analysis complete")

	categories := breakdown.Categories()
	c.JSON(http.StatusOK, api.AnalyzeResponse{
		Success:        true,
		Analysis:       text,
		ScoreBreakdown: &categories,
		BotScore:       &botScore,
	})
}
