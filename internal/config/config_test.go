package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/holdbot/internal/domain/catalog"
)

var allVars = []string{
	"BOOK_URLS", "BOOKS_FILE", "BOOTSTRAP_URL", "EMAIL_SENDER", "EMAIL_PASSWORD", "EMAIL_PWD",
	"EMAIL_RECEIVER", "SMTP_HOST", "SMTP_PORT", "SESSION_FILE", "SESSION_DATABASE_URL",
	"SESSION_NAME", "SESSION_SECRET", "HEADLESS", "USER_AGENT", "CHROME_PATH", "CHROME_NO_SANDBOX",
	"NAVIGATE_TIMEOUT", "INITIAL_SETTLE", "RELOADS", "RELOAD_SETTLE", "CLICK_SETTLE", "BOOK_PAUSE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allVars {
		t.Setenv(k, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Empty(t, cfg.Books)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPServer)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "state.json", cfg.SessionFile)
	assert.Equal(t, "default", cfg.SessionName)
	assert.True(t, cfg.Headless)
	assert.Equal(t, catalog.DefaultSettlePolicy(), cfg.Settle)
	assert.Equal(t, 2*time.Second, cfg.ClickSettle)
	assert.Equal(t, 25*time.Second, cfg.BookPause)
	assert.Nil(t, cfg.SessionSecret)
}

func TestBooks(t *testing.T) {
	clearEnv(t)
	file := filepath.Join(t.TempDir(), "books.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
books:
  - url: https://lib.example.org/title/2
    note: book club
  - url: https://lib.example.org/title/1
`), 0o600))
	t.Setenv("BOOK_URLS", `["https://lib.example.org/title/1", " https://lib.example.org/title/3 "]`)
	t.Setenv("BOOKS_FILE", file)

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Len(t, cfg.Books, 3)
	assert.Equal(t, "https://lib.example.org/title/1", cfg.Books[0].URL)
	assert.Equal(t, "https://lib.example.org/title/3", cfg.Books[1].URL)
	assert.Equal(t, "https://lib.example.org/title/2", cfg.Books[2].URL)
	assert.Equal(t, "book club", cfg.Books[2].Note)
}

func TestInvalidValues(t *testing.T) {
	tests := map[string]string{
		"BOOK_URLS":        `https://not-json`,
		"SMTP_PORT":        "smtp",
		"HEADLESS":         "maybe",
		"NAVIGATE_TIMEOUT": "30",
		"RELOADS":          "-1",
		"BOOK_PAUSE":       "-5s",
		"SESSION_SECRET":   "%%%not-base64",
		"BOOKS_FILE":       "/does/not/exist.yaml",
	}
	for k, v := range tests {
		t.Run(k, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(k, v)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}

	t.Run("relative book url", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BOOK_URLS", `["/title/1"]`)
		_, err := FromEnv()
		assert.Error(t, err)
	})
}

func TestOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMAIL_PWD", "legacy")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("HEADLESS", "false")
	t.Setenv("RELOADS", "0")
	t.Setenv("INITIAL_SETTLE", "3s")
	t.Setenv("BOOK_PAUSE", "1m")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.EmailPassword)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.False(t, cfg.Headless)
	assert.Zero(t, cfg.Settle.Reloads)
	assert.Equal(t, 3*time.Second, cfg.Settle.InitialSettle)
	assert.Equal(t, time.Minute, cfg.BookPause)

	t.Setenv("EMAIL_PASSWORD", "current")
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "current", cfg.EmailPassword)
}

func TestSessionSecret(t *testing.T) {
	clearEnv(t)
	raw := []byte("0123456789abcdef0123456789abcdef")
	enc := base64.StdEncoding.EncodeToString(raw)

	t.Setenv("SESSION_SECRET", enc)
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, raw, cfg.SessionSecret)

	file := filepath.Join(t.TempDir(), "secret")
	require.NoError(t, os.WriteFile(file, []byte(enc+"\n"), 0o600))
	t.Setenv("SESSION_SECRET", file)
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.Equal(t, raw, cfg.SessionSecret)
}

func TestRequire(t *testing.T) {
	var cfg Config
	err := cfg.RequireRun()
	require.Error(t, err)
	for _, k := range []string{"EMAIL_SENDER", "EMAIL_PASSWORD", "EMAIL_RECEIVER", "BOOTSTRAP_URL", "SESSION_SECRET"} {
		assert.Contains(t, err.Error(), k)
	}

	cfg = Config{
		BootstrapURL:  "https://lib.example.org/signin",
		SessionSecret: []byte("0123456789abcdef"),
	}
	assert.NoError(t, cfg.RequireLogin())
	assert.Error(t, cfg.RequireRun())

	cfg.EmailSender, cfg.EmailPassword, cfg.EmailReceiver = "a@example.org", "pw", "b@example.org"
	assert.NoError(t, cfg.RequireRun())
}
