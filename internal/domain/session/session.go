package session

import (
	"context"
	"errors"
	"time"

	"github.com/example/holdbot/internal/domain/catalog"
)

var ErrNotFound = errors.New("session artifact not found")

// Blob is the authenticated browsing context captured after a manual login.
// Once stored it is trusted as-is; a stale blob only shows up as failed
// book checks.
type Blob struct {
	Cookies    []catalog.Cookie `json:"cookies"`
	Origin     string           `json:"origin"`
	CapturedAt time.Time        `json:"captured_at"`
}

type Store interface {
	Exists(ctx context.Context) (bool, error)
	// Load returns ErrNotFound when nothing has been saved.
	Load(ctx context.Context) (Blob, error)
	Save(ctx context.Context, b Blob) error
}

// Bootstrapper runs the interactive login and captures its session.
type Bootstrapper interface {
	Capture(ctx context.Context) (Blob, error)
}
