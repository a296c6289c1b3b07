package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AnalyzeRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "memescore_analyze_requests_total",
		Help: "Analyze requests by outcome",
	}, []string{"status"})
	NarrativeOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "memescore_narrative_total",
		Help: "Narratives produced, by source (llm, fallback, error)",
	}, []string{"source"})
	ProviderDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "memescore_provider_duration_seconds",
		Help:    "Text generation call duration seconds",
		Buckets: prometheus.DefBuckets,
	})
	BotScores = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "memescore_bot_score",
		Help:    "Distribution of computed bot scores",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})
	MemeScores = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "memescore_meme_score",
		Help:    "Distribution of computed MemeScores",
		Buckets: prometheus.LinearBuckets(0, 10, 12),
	})
	CommandRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "memescore_cli_commands_total",
		Help: "CLI command runs by result",
	}, []string{"command", "result"})
)

func init() {
	prometheus.MustRegister(AnalyzeRequests, NarrativeOutcomes, ProviderDuration, BotScores, MemeScores, CommandRuns)
}

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }

// IncAnalyze counts an analyze request with its outcome label.
func IncAnalyze(status string) { AnalyzeRequests.WithLabelValues(status).Inc() }

func IncNarrative(source string) { NarrativeOutcomes.WithLabelValues(source).Inc() }

// ObserveProviderDuration records a provider call that began at start.
func ObserveProviderDuration(start time.Time) {
	ProviderDuration.Observe(time.Since(start).Seconds())
}

// ObserveScores records the numbers an analysis produced.
func ObserveScores(memeScore, botScore float64) {
	MemeScores.Observe(memeScore)
	BotScores.Observe(botScore)
}

func IncCommandRun(cmd string) { CommandRuns.WithLabelValues(cmd, "run").Inc() }

func IncCommandError(cmd string) { CommandRuns.WithLabelValues(cmd, "error").Inc() }
