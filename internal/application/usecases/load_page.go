package usecases

import (
	"context"
	"fmt"

	"github.com/example/holdbot/internal/domain/catalog"
)

// LoadPage navigates to a book page and waits for it to render according to
// Policy: navigate, settle, then reload and settle Policy.Reloads times.
type LoadPage struct {
	Policy catalog.SettlePolicy
	Sleep  SleepFunc
}

func (u LoadPage) Execute(ctx context.Context, p catalog.Page, url string) error {
	sleep := u.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	if err := u.withTimeout(ctx, func(ctx context.Context) error { return p.Navigate(ctx, url) }); err != nil {
		return catalog.NewError(catalog.ErrNavigation, url, fmt.Errorf("navigate: %w", err))
	}
	if err := sleep(ctx, u.Policy.InitialSettle); err != nil {
		return catalog.NewError(catalog.ErrNavigation, url, fmt.Errorf("settle: %w", err))
	}

	for i := 0; i < u.Policy.Reloads; i++ {
		if err := u.withTimeout(ctx, p.Reload); err != nil {
			return catalog.NewError(catalog.ErrNavigation, url, fmt.Errorf("reload %d: %w", i+1, err))
		}
		if err := sleep(ctx, u.Policy.ReloadSettle); err != nil {
			return catalog.NewError(catalog.ErrNavigation, url, fmt.Errorf("settle after reload %d: %w", i+1, err))
		}
	}
	return nil
}

func (u LoadPage) withTimeout(ctx context.Context, fn func(context.Context) error) error {
	if u.Policy.NavigateTimeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, u.Policy.NavigateTimeout)
	defer cancel()
	return fn(ctx)
}
