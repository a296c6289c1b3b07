package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"memescore/internal/client"
	"memescore/internal/cmdlog"
	"memescore/internal/config"
	"memescore/internal/llm"
	"memescore/internal/logging"
	"memescore/internal/model"
	"memescore/internal/narrative"
	"memescore/internal/server"
	"memescore/internal/theme"
)

const defaultConfigPath = "./memescore.yaml"

func main() {
	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	var run func([]string, logging.Logger) error
	switch cmd {
	case "serve":
		run = cmdServe
	case "init":
		run = cmdInit
	case "score":
		run = cmdScore
	case "analyze":
		run = cmdAnalyze
	case "health":
		run = cmdHealth
	default:
		printHelp()
		return
	}

	config.LoadEnv(nil, ".env", ".env.dev")
	logger := logging.New(os.Getenv("LOG_LEVEL"))
	if err := cmdlog.Run(logger, cmd, func() error { return run(os.Args[2:], logger) }); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func printHelp() {
	theme.PrintBanner()
	fmt.Println("Usage: memescore <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  serve       Run the analyzer HTTP service")
	fmt.Println("  init        Create a config file at ./memescore.yaml")
	fmt.Println("  score       Score counters locally without the service")
	fmt.Println("  analyze     Send counters to a running analyzer")
	fmt.Println("  health      Check a running analyzer")
}

func cmdServe(args []string, _ logging.Logger) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", defaultConfigPath, "config path")
	port := fs.String("port", "", "listen port (overrides config and AI_BACKEND_PORT)")
	_ = fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(cfg.Logging.Level)
	tpl, err := narrative.ForLocale(cfg.Narrative.Locale)
	if err != nil {
		return err
	}

	var gen narrative.Generator
	provider, err := llm.New(llm.Config{
		Provider:     cfg.LLM.Provider,
		Model:        cfg.LLM.Model,
		APIKey:       cfg.LLM.APIKey,
		BaseURL:      cfg.LLM.BaseURL,
		SystemPrompt: tpl.SystemPrompt,
		Timeout:      cfg.LLM.Timeout,
	})
	switch {
	case errors.Is(err, llm.ErrNoCredential):
		logger.Warn("OPENAI_API_KEY not set; analyses will use the static fallback text")
	case err != nil:
		return err
	default:
		gen = provider
		logger.WithField("model", provider.Model()).Info("Text generation enabled")
	}

	composer := narrative.NewComposer(gen, tpl, cfg.LLM.Timeout, logger)
	server.SetMode(cfg.Server.Mode)
	router := server.NewRouter(logger, server.NewAnalyzeHandler(composer, logger))
	return server.Start(context.Background(), cfg.Server, router, logger)
}

func cmdInit(args []string, _ logging.Logger) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("path", defaultConfigPath, "path to write config")
	_ = fs.Parse(args)
	if err := config.Save(*path, config.Default()); err != nil {
		return err
	}
	abs, _ := filepath.Abs(*path)
	theme.PrintBanner()
	fmt.Println("Config written to:", abs)
	return nil
}

// counterFlags registers the eight engagement counters on fs.
func counterFlags(fs *flag.FlagSet) *model.EngagementInput {
	in := &model.EngagementInput{}
	fs.Float64Var(&in.Likes, "likes", 0, "likes")
	fs.Float64Var(&in.Comments, "comments", 0, "comments (replies)")
	fs.Float64Var(&in.Reposts, "reposts", 0, "reposts")
	fs.Float64Var(&in.Quotes, "quotes", 0, "quotes")
	fs.Float64Var(&in.Views, "views", 0, "views")
	fs.Float64Var(&in.Followers, "followers", 0, "followers")
	fs.Float64Var(&in.TipCount, "tip-count", 0, "number of tips")
	fs.Float64Var(&in.TipAmount, "tip-amount", 0, "tip total in ETH")
	return in
}

func checkCounters(in model.EngagementInput) error {
	for _, c := range []struct {
		name string
		v    float64
	}{
		{"likes", in.Likes}, {"comments", in.Comments}, {"reposts", in.Reposts}, {"quotes", in.Quotes},
		{"views", in.Views}, {"followers", in.Followers}, {"tip-count", in.TipCount}, {"tip-amount", in.TipAmount},
	} {
		if c.v < 0 {
			return fmt.Errorf("-%s must not be negative", c.name)
		}
	}
	return nil
}

func cmdScore(args []string, _ logging.Logger) error {
	fs := flag.NewFlagSet("score", flag.ExitOnError)
	in := counterFlags(fs)
	verbose := fs.Bool("v", false, "explain the bot score")
	prompt := fs.Bool("prompt", false, "print the generation prompt")
	locale := fs.String("locale", "ko", "prompt locale ("+strings.Join(narrative.Locales(), ", ")+")")
	_ = fs.Parse(args)
	if err := checkCounters(*in); err != nil {
		return err
	}

	b := model.ComputeBreakdown(*in)
	signals := model.EvaluateBot(*in)
	fmt.Printf("engagement_quality=%.1f virality_potential=%.1f community_strength=%.1f monetization_health=%.1f\n",
		b.EngagementScore, b.ViewScore, b.FollowScore, b.TipScore)
	fmt.Printf("meme_score=%.1f total_engagement=%.0f bot_score=%.1f\n", b.MemeScore, b.TotalEngagement, signals.Score)

	if *verbose {
		if signals.Skipped != "" {
			fmt.Println("bot check skipped:", signals.Skipped)
		} else {
			fmt.Printf("engagement_rate=%.3f follower_engagement=%.3f likes_ratio=%.3f comments_ratio=%.3f\n",
				signals.EngagementRate, signals.FollowerEngagement, signals.LikesRatio, signals.CommentsRatio)
			if len(signals.Fired) == 0 {
				fmt.Println("rules fired: none")
			} else {
				fmt.Println("rules fired:", strings.Join(signals.Fired, ", "))
			}
		}
	}
	if *prompt {
		tpl, err := narrative.ForLocale(*locale)
		if err != nil {
			return err
		}
		fmt.Println("---")
		fmt.Println(narrative.BuildPrompt(tpl, b, *in, signals.Score))
	}
	return nil
}

func cmdAnalyze(args []string, logger logging.Logger) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	in := counterFlags(fs)
	url := fs.String("url", analyzerURL(), "analyzer base URL")
	timeout := fs.Duration("timeout", client.DefaultTimeout, "request timeout")
	_ = fs.Parse(args)
	if err := checkCounters(*in); err != nil {
		return err
	}

	c := client.NewHTTPClient(*url, *timeout, logger)
	resp, err := c.Analyze(context.Background(), *in)
	if err != nil {
		return err
	}
	s := resp.ScoreBreakdown
	fmt.Printf("engagement_quality=%.1f virality_potential=%.1f community_strength=%.1f monetization_health=%.1f bot_score=%.1f\n",
		s.EngagementQuality, s.ViralityPotential, s.CommunityStrength, s.MonetizationHealth, *resp.BotScore)
	fmt.Println(resp.Analysis)
	return nil
}

func cmdHealth(args []string, logger logging.Logger) error {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	url := fs.String("url", analyzerURL(), "analyzer base URL")
	_ = fs.Parse(args)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	h, err := client.NewHTTPClient(*url, 0, logger).Health(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("status=%s service=%q openai_available=%t\n", h.Status, h.Service, h.OpenAIAvailable)
	return nil
}

// analyzerURL honours AI_BACKEND_URL, then AI_BACKEND_PORT on localhost.
func analyzerURL() string {
	if v := strings.TrimSpace(os.Getenv("AI_BACKEND_URL")); v != "" {
		return v
	}
	if p := strings.TrimSpace(os.Getenv("AI_BACKEND_PORT")); p != "" {
		return "http://localhost:" + p
	}
	return client.DefaultBaseURL
}
