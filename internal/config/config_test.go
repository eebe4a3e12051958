package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"GEMINI_MODEL", "PAGE_DELAY", "IMAGE_MAX_ATTEMPTS", "SERVER_ADDR", "SESSION_TTL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := LoadConfig()
	assert.Equal(t, DefaultModel, cfg.GeminiModel)
	assert.Equal(t, DefaultPageDelay, cfg.PageDelay)
	assert.Equal(t, DefaultImageMaxAttempts, cfg.ImageMaxAttempts)
	assert.Equal(t, DefaultServerAddr, cfg.ServerAddr)
	assert.Equal(t, DefaultSessionTTL, cfg.SessionTTL)
	assert.Equal(t, cfg.GeminiModel, cfg.Options.AIModel)
	assert.Equal(t, DefaultLanguage, cfg.Options.Language)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "gemini-test")
	t.Setenv("PAGE_DELAY", "250ms")
	t.Setenv("IMAGE_MAX_ATTEMPTS", "5")
	t.Setenv("IMAGE_RATE_INTERVAL", "1s")

	cfg := LoadConfig()
	assert.Equal(t, "gemini-test", cfg.GeminiModel)
	assert.Equal(t, 250*time.Millisecond, cfg.PageDelay)
	assert.Equal(t, 250*time.Millisecond, cfg.Options.PageDelay)
	assert.Equal(t, 5, cfg.ImageMaxAttempts)
	assert.Equal(t, time.Second, cfg.ImageRate)
}

func TestLoadConfig_InvalidFallsBack(t *testing.T) {
	t.Setenv("PAGE_DELAY", "soon")
	t.Setenv("IMAGE_MAX_ATTEMPTS", "zero")

	cfg := LoadConfig()
	assert.Equal(t, DefaultPageDelay, cfg.PageDelay)
	assert.Equal(t, DefaultImageMaxAttempts, cfg.ImageMaxAttempts)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	os.Unsetenv("GEMINI_API_KEY")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=dotenv-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg := LoadConfig()
	assert.Equal(t, "dotenv-key", cfg.GeminiAPIKey)
}
