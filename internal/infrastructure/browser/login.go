package browser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/example/holdbot/internal/domain/catalog"
	"github.com/example/holdbot/internal/domain/session"
)

// Login opens a visible browser on URL and waits for the operator to sign in
// by hand, then captures the browser cookies.
type Login struct {
	Options Options
	URL     string
	In      io.Reader
	Out     io.Writer
	Log     *slog.Logger
}

func (l Login) Capture(ctx context.Context) (session.Blob, error) {
	if l.URL == "" {
		return session.Blob{}, errors.New("bootstrap url is empty")
	}
	log := l.Log
	if log == nil {
		log = slog.Default()
	}

	opts := l.Options
	opts.Headless = false
	allocCtx, cancelAlloc := NewAllocator(ctx, opts)
	defer cancelAlloc()
	bctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	log.Info("launching login page", "url", l.URL)
	if err := chromedp.Run(bctx, chromedp.Navigate(l.URL)); err != nil {
		return session.Blob{}, fmt.Errorf("open login page: %w", err)
	}

	fmt.Fprintln(l.Out, "Please log into your account manually in the browser.")
	fmt.Fprint(l.Out, "Press ENTER after you're logged in and see your home page...")
	if err := waitForEnter(ctx, l.In); err != nil {
		return session.Blob{}, err
	}
	fmt.Fprintln(l.Out)

	var cookies []catalog.Cookie
	if err := chromedp.Run(bctx, getCookies(&cookies)); err != nil {
		return session.Blob{}, fmt.Errorf("capture cookies: %w", err)
	}
	if len(cookies) == 0 {
		return session.Blob{}, errors.New("no cookies captured, was the login completed?")
	}
	if err := chromedp.Cancel(bctx); err != nil {
		log.Warn("failed to close login browser", "err", err)
	}

	return session.Blob{
		Cookies:    cookies,
		Origin:     l.URL,
		CapturedAt: time.Now().UTC(),
	}, nil
}

func waitForEnter(ctx context.Context, in io.Reader) error {
	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(in).ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = errors.New("input closed before login was confirmed")
		}
		done <- err
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
