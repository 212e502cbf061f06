package config

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/holdbot/internal/domain/catalog"
)

const (
	DefaultSMTPServer  = "smtp.gmail.com"
	DefaultSMTPPort    = 587
	DefaultSessionFile = "state.json"
	DefaultSessionName = "default"
	DefaultClickSettle = 2 * time.Second
	DefaultBookPause   = 25 * time.Second
)

type Config struct {
	Books        []catalog.BookTarget
	BootstrapURL string

	// notifications
	SMTPServer    string
	SMTPPort      int
	EmailSender   string
	EmailPassword string
	EmailReceiver string

	// session artifact
	SessionFile        string
	SessionDatabaseURL string
	SessionName        string
	SessionSecret      []byte

	// browser
	Headless    bool
	UserAgent   string
	ChromePath  string
	NoSandbox   bool
	Settle      catalog.SettlePolicy
	ClickSettle time.Duration
	BookPause   time.Duration
}

func FromEnv() (Config, error) {
	cfg := Config{
		BootstrapURL:       os.Getenv("BOOTSTRAP_URL"),
		SMTPServer:         getenv("SMTP_HOST", DefaultSMTPServer),
		EmailSender:        os.Getenv("EMAIL_SENDER"),
		EmailPassword:      getenv("EMAIL_PASSWORD", os.Getenv("EMAIL_PWD")),
		EmailReceiver:      os.Getenv("EMAIL_RECEIVER"),
		SessionFile:        getenv("SESSION_FILE", DefaultSessionFile),
		SessionDatabaseURL: os.Getenv("SESSION_DATABASE_URL"),
		SessionName:        getenv("SESSION_NAME", DefaultSessionName),
		UserAgent:          os.Getenv("USER_AGENT"),
		ChromePath:         os.Getenv("CHROME_PATH"),
	}

	var err error
	if cfg.SMTPPort, err = intEnv("SMTP_PORT", DefaultSMTPPort); err != nil {
		return Config{}, err
	}
	if cfg.SMTPPort < 1 || cfg.SMTPPort > 65535 {
		return Config{}, fmt.Errorf("invalid SMTP_PORT %d", cfg.SMTPPort)
	}
	if cfg.Headless, err = boolEnv("HEADLESS", true); err != nil {
		return Config{}, err
	}
	if cfg.NoSandbox, err = boolEnv("CHROME_NO_SANDBOX", false); err != nil {
		return Config{}, err
	}

	cfg.Settle = catalog.DefaultSettlePolicy()
	if cfg.Settle.NavigateTimeout, err = durationEnv("NAVIGATE_TIMEOUT", cfg.Settle.NavigateTimeout); err != nil {
		return Config{}, err
	}
	if cfg.Settle.InitialSettle, err = durationEnv("INITIAL_SETTLE", cfg.Settle.InitialSettle); err != nil {
		return Config{}, err
	}
	if cfg.Settle.Reloads, err = intEnv("RELOADS", cfg.Settle.Reloads); err != nil {
		return Config{}, err
	}
	if cfg.Settle.ReloadSettle, err = durationEnv("RELOAD_SETTLE", cfg.Settle.ReloadSettle); err != nil {
		return Config{}, err
	}
	if err := cfg.Settle.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.ClickSettle, err = durationEnv("CLICK_SETTLE", DefaultClickSettle); err != nil {
		return Config{}, err
	}
	if cfg.BookPause, err = durationEnv("BOOK_PAUSE", DefaultBookPause); err != nil {
		return Config{}, err
	}

	var books []catalog.BookTarget
	if raw := strings.TrimSpace(os.Getenv("BOOK_URLS")); raw != "" {
		var urls []string
		if err := json.Unmarshal([]byte(raw), &urls); err != nil {
			return Config{}, fmt.Errorf("BOOK_URLS must be a JSON array of strings: %w", err)
		}
		for _, u := range urls {
			books = append(books, catalog.BookTarget{URL: strings.TrimSpace(u)})
		}
	}
	if path := os.Getenv("BOOKS_FILE"); path != "" {
		fromFile, err := LoadBooksFile(path)
		if err != nil {
			return Config{}, err
		}
		books = append(books, fromFile...)
	}
	for _, b := range books {
		if err := b.Validate(); err != nil {
			return Config{}, err
		}
	}
	cfg.Books = catalog.Dedupe(books)

	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		if cfg.SessionSecret, err = decodeB64(secret); err != nil {
			return Config{}, fmt.Errorf("SESSION_SECRET: %w", err)
		}
	}

	return cfg, nil
}

// RequireRun checks what a batch run needs beyond FromEnv.
func (c Config) RequireRun() error {
	var missing []string
	if c.EmailSender == "" {
		missing = append(missing, "EMAIL_SENDER")
	}
	if c.EmailPassword == "" {
		missing = append(missing, "EMAIL_PASSWORD")
	}
	if c.EmailReceiver == "" {
		missing = append(missing, "EMAIL_RECEIVER")
	}
	if err := c.RequireLogin(); err != nil {
		return errors.Join(missingErr(missing), err)
	}
	return missingErr(missing)
}

// RequireLogin checks what the interactive bootstrap needs.
func (c Config) RequireLogin() error {
	var missing []string
	if c.BootstrapURL == "" {
		missing = append(missing, "BOOTSTRAP_URL")
	}
	if len(c.SessionSecret) == 0 {
		missing = append(missing, "SESSION_SECRET")
	}
	return missingErr(missing)
}

func missingErr(names []string) error {
	if len(names) == 0 {
		return nil
	}
	return fmt.Errorf("missing required environment: %s", strings.Join(names, ", "))
}

// decodeB64 accepts the value itself or a path to a file holding it.
func decodeB64(s string) ([]byte, error) {
	if b, err := os.ReadFile(s); err == nil {
		// secret mounts
		s = string(b)
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(s))
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func intEnv(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return n, nil
}

func boolEnv(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", k, err)
	}
	return b, nil
}

func durationEnv(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", k)
	}
	return d, nil
}
