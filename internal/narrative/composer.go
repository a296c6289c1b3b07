package narrative

import (
	"context"
	"strings"
	"time"

	"memescore/internal/logging"
	"memescore/internal/metrics"
	"memescore/internal/model"
	"memescore/internal/util"
)

// Generator produces text for a prompt. Implementations must honour ctx.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Source records which path produced a narrative.
type Source string

const (
	SourceLLM      Source = "llm"
	SourceFallback Source = "fallback"
	SourceError    Source = "error"
)

// DefaultTimeout bounds a single generator call.
const DefaultTimeout = 10 * time.Second

// Composer turns computed scores into the narrative text.
// A nil generator means no provider is configured.
type Composer struct {
	gen     Generator
	tpl     Templates
	timeout time.Duration
	logger  logging.Logger
}

func NewComposer(gen Generator, tpl Templates, timeout time.Duration, logger logging.Logger) *Composer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Composer{gen: gen, tpl: tpl, timeout: timeout, logger: logger}
}

// Available reports whether a generator is configured.
func (c *Composer) Available() bool { return c.gen != nil }

// Templates returns the templates the composer renders with.
func (c *Composer) Templates() Templates { return c.tpl }

// Compose never fails: without a generator it returns the fixed fallback,
// and a generator error or timeout yields the fixed error text.
func (c *Composer) Compose(ctx context.Context, b model.ScoreBreakdown, in model.EngagementInput, botScore float64) (string, Source) {
	if c.gen == nil {
		metrics.IncNarrative(string(SourceFallback))
		return c.tpl.Fallback, SourceFallback
	}

	prompt := BuildPrompt(c.tpl, b, in, botScore)

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	text, err := c.gen.Generate(callCtx, prompt)
	metrics.ObserveProviderDuration(start)
	if err != nil {
		metrics.IncNarrative(string(SourceError))
		c.logger.WithFields(logging.Fields{
			"error":    err.Error(),
			"timeout":  c.timeout.String(),
			"duration": time.Since(start).String(),
		}).Warn("narrative generation failed; using error fallback")
		return c.tpl.ErrorFallback, SourceError
	}

	metrics.IncNarrative(string(SourceLLM))
	return c.decorate(text), SourceLLM
}

// decorate adds the header and disclaimer when the model left them out.
func (c *Composer) decorate(text string) string {
	if !strings.HasPrefix(text, c.tpl.HeaderGlyph) {
		text = c.tpl.Header + text
	}
	if !util.ContainsAny(text, c.tpl.DisclaimerMarkers[:]) {
		text += c.tpl.Disclaimer
	}
	return text
}
