package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/holdbot/internal/domain/session"
)

// EnsureSession returns the stored session, running the interactive
// bootstrap first when none has been saved yet.
type EnsureSession struct {
	Store     session.Store
	Bootstrap session.Bootstrapper
	Log       *slog.Logger
}

func (u EnsureSession) Execute(ctx context.Context) (session.Blob, error) {
	b, err := u.Store.Load(ctx)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, session.ErrNotFound) {
		return session.Blob{}, fmt.Errorf("load session: %w", err)
	}
	u.logger().Info("no session artifact found, starting interactive login")
	return u.Refresh(ctx)
}

// Refresh always runs the bootstrap and replaces the stored session.
func (u EnsureSession) Refresh(ctx context.Context) (session.Blob, error) {
	if u.Bootstrap == nil {
		return session.Blob{}, fmt.Errorf("no session artifact and no bootstrapper configured")
	}
	b, err := u.Bootstrap.Capture(ctx)
	if err != nil {
		return session.Blob{}, fmt.Errorf("bootstrap: %w", err)
	}
	if err := u.Store.Save(ctx, b); err != nil {
		return session.Blob{}, fmt.Errorf("save session: %w", err)
	}
	u.logger().Info("session saved", "cookies", len(b.Cookies))
	return b, nil
}

func (u EnsureSession) logger() *slog.Logger {
	if u.Log == nil {
		return slog.Default()
	}
	return u.Log
}
