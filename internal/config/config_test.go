package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"OPENAI_API_KEY", "MEME_EXPLAINER_MODEL", "OPENAI_BASE_URL", "LLM_PROVIDER",
	"AI_BACKEND_PORT", "GIN_MODE", "LOG_LEVEL", "MEMESCORE_LOCALE", "LLM_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := Default()
	if cfg.Server.Port != "4100" || cfg.LLM.Model != "gpt-4o-mini" || cfg.Narrative.Locale != "ko" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.LLM.Timeout != def.LLM.Timeout || cfg.LLM.APIKey != "" {
		t.Fatalf("unexpected llm config %+v", cfg.LLM)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MEME_EXPLAINER_MODEL", "gpt-4.1-mini")
	t.Setenv("AI_BACKEND_PORT", "5100")
	t.Setenv("LLM_TIMEOUT", "3s")
	t.Setenv("MEMESCORE_LOCALE", "en")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LLM.APIKey != "sk-test" || cfg.LLM.Model != "gpt-4.1-mini" || cfg.Server.Port != "5100" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.LLM.Timeout != 3*time.Second || cfg.Narrative.Locale != "en" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestFileKeyWinsOverEnvKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "from-env")
	path := filepath.Join(t.TempDir(), "memescore.yaml")
	if err := os.WriteFile(path, []byte("llm:\n  apiKey: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LLM.APIKey != "from-file" {
		t.Fatalf("got %q", cfg.LLM.APIKey)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "memescore.yaml")
	cfg := Default()
	cfg.LLM.Timeout = 4 * time.Second
	cfg.Narrative.Locale = "en"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip mismatch\n got %+v\nwant %+v", got, cfg)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "memescore.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: \"8081\"\nllm:\n  timeout: 2500ms\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8081" || cfg.LLM.Timeout != 2500*time.Millisecond {
		t.Fatalf("file not applied: %+v", cfg)
	}
	if cfg.Server.IdleTimeout != 120*time.Second || cfg.LLM.Model != "gpt-4o-mini" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadBadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = "http"
	cfg.LLM.Provider = "bard"
	cfg.LLM.Timeout = 0
	cfg.Narrative.Locale = "fr"
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	for _, want := range []string{"server.port", "llm.provider", "llm.timeout", "narrative.locale"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestLoadEnvDoesNotOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	if err := os.WriteFile(file, []byte("OPENAI_API_KEY=from-dotenv\nMEME_EXPLAINER_MODEL=from-dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MEME_EXPLAINER_MODEL", "from-process")
	// godotenv.Load keeps variables that exist even when empty.
	os.Unsetenv("OPENAI_API_KEY")

	LoadEnv(nil, file)
	if got := os.Getenv("OPENAI_API_KEY"); got != "from-dotenv" {
		t.Fatalf("expected dotenv value, got %q", got)
	}
	if got := os.Getenv("MEME_EXPLAINER_MODEL"); got != "from-process" {
		t.Fatalf("process env must win, got %q", got)
	}
}
