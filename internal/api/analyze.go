package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"memescore/internal/model"
)

// ServiceName is reported by /health.
const ServiceName = "AI MemeScore Analyzer"

// AnalyzeRequest is the /analyze body. Every field is required; values stay
// raw until Validate so presence and type are checked separately.
type AnalyzeRequest struct {
	Likes     json.RawMessage `json:"likes,omitempty"`
	Comments  json.RawMessage `json:"comments,omitempty"`
	Reposts   json.RawMessage `json:"reposts,omitempty"`
	Quotes    json.RawMessage `json:"quotes,omitempty"`
	Views     json.RawMessage `json:"views,omitempty"`
	Followers json.RawMessage `json:"followers,omitempty"`
	TipCount  json.RawMessage `json:"tip_count,omitempty"`
	TipAmount json.RawMessage `json:"tip_amount,omitempty"` // ETH
}

// MissingFieldError reports an absent required field.
type MissingFieldError struct{ Field string }

func (e *MissingFieldError) Error() string {
	return "Missing required field: " + e.Field
}

// CoercionError reports a field that is present but not a non-negative number.
type CoercionError struct {
	Field  string
	Reason string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("could not convert %s to a non-negative number: %s", e.Field, e.Reason)
}

type field struct {
	name string
	raw  json.RawMessage
	dst  *float64
}

// Validate checks every field for presence first, in declaration order, and
// only then converts them, so a missing field is always reported ahead of a
// malformed one.
func (r *AnalyzeRequest) Validate() (model.EngagementInput, error) {
	var in model.EngagementInput
	fields := []field{
		{"likes", r.Likes, &in.Likes},
		{"comments", r.Comments, &in.Comments},
		{"reposts", r.Reposts, &in.Reposts},
		{"quotes", r.Quotes, &in.Quotes},
		{"views", r.Views, &in.Views},
		{"followers", r.Followers, &in.Followers},
		{"tip_count", r.TipCount, &in.TipCount},
		{"tip_amount", r.TipAmount, &in.TipAmount},
	}
	for _, f := range fields {
		if len(f.raw) == 0 {
			return model.EngagementInput{}, &MissingFieldError{Field: f.name}
		}
	}
	for _, f := range fields {
		v, err := coerce(f.raw)
		if err != nil {
			return model.EngagementInput{}, &CoercionError{Field: f.name, Reason: err.Error()}
		}
		*f.dst = v
	}
	return in, nil
}

// coerce accepts numbers, numeric strings and booleans.
func coerce(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return 0, err
	}

	var f float64
	switch x := v.(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(x.String(), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %s", x)
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid numeric string %q", x)
		}
		f = parsed
	case bool:
		if x {
			f = 1
		}
	case nil:
		return 0, fmt.Errorf("null is not a number")
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("value must be finite")
	}
	if f < 0 {
		return 0, fmt.Errorf("value %v is negative", f)
	}
	return f, nil
}

// AnalyzeRequestFromInput builds a request body from already typed counters.
func AnalyzeRequestFromInput(in model.EngagementInput) AnalyzeRequest {
	num := func(v float64) json.RawMessage {
		return json.RawMessage(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return AnalyzeRequest{
		Likes:     num(in.Likes),
		Comments:  num(in.Comments),
		Reposts:   num(in.Reposts),
		Quotes:    num(in.Quotes),
		Views:     num(in.Views),
		Followers: num(in.Followers),
		TipCount:  num(in.TipCount),
		TipAmount: num(in.TipAmount),
	}
}

// AnalyzeResponse is the /analyze reply. Failure replies only carry Error.
type AnalyzeResponse struct {
	Success        bool              `json:"success"`
	Error          string            `json:"error,omitempty"`
	Analysis       string            `json:"analysis,omitempty"`
	ScoreBreakdown *model.Categories `json:"score_breakdown,omitempty"`
	BotScore       *float64          `json:"bot_score,omitempty"`
}

// HealthResponse is the /health reply.
type HealthResponse struct {
	Status          string `json:"status"`
	Service         string `json:"service"`
	OpenAIAvailable bool   `json:"openai_available"`
}
