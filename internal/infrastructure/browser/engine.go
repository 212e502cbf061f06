package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/example/holdbot/internal/domain/catalog"
)

// Engine is one Chrome process shared by a run. Every book gets its own tab.
type Engine struct {
	opts Options
	log  *slog.Logger

	cancelAlloc   context.CancelFunc
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
}

func New(opts Options, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{opts: opts, log: log}
}

// Start launches Chrome and restores the session cookies.
func (e *Engine) Start(ctx context.Context, cookies []catalog.Cookie) error {
	if e.browserCtx != nil {
		return errors.New("browser already started")
	}
	allocCtx, cancelAlloc := NewAllocator(ctx, e.opts)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			e.log.Debug(fmt.Sprintf(format, args...), "source", "chromedp")
		}),
		chromedp.WithErrorf(func(format string, args ...any) {
			e.log.Warn(fmt.Sprintf(format, args...), "source", "chromedp")
		}),
	)
	if err := chromedp.Run(browserCtx, setCookies(cookies)); err != nil {
		cancelBrowser()
		cancelAlloc()
		return fmt.Errorf("launch browser: %w", err)
	}
	e.cancelAlloc = cancelAlloc
	e.browserCtx = browserCtx
	e.cancelBrowser = cancelBrowser
	e.log.Debug("browser started", "headless", e.opts.Headless, "cookies", len(cookies))
	return nil
}

func (e *Engine) NewPage(ctx context.Context) (catalog.Page, error) {
	if e.browserCtx == nil {
		return nil, errors.New("browser not started")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tabCtx, cancel := chromedp.NewContext(e.browserCtx)
	if err := chromedp.Run(tabCtx, page.SetLifecycleEventsEnabled(true)); err != nil {
		cancel()
		return nil, fmt.Errorf("open tab: %w", err)
	}
	return &tabPage{ctx: tabCtx, cancel: cancel}, nil
}

func (e *Engine) Close() error {
	if e.browserCtx == nil {
		return nil
	}
	err := chromedp.Cancel(e.browserCtx)
	e.cancelBrowser()
	e.cancelAlloc()
	e.browserCtx = nil
	return err
}

// tabPage is a catalog.Page backed by one Chrome tab.
type tabPage struct {
	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
	closeErr  error
}

// run executes actions on the tab, bounded by the deadline and cancellation
// of the caller's ctx.
func (p *tabPage) run(ctx context.Context, actions ...chromedp.Action) error {
	rctx, cancel := context.WithCancel(p.ctx)
	defer cancel()
	if dl, ok := ctx.Deadline(); ok {
		var cancelDL context.CancelFunc
		rctx, cancelDL = context.WithDeadline(rctx, dl)
		defer cancelDL()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(rctx, actions...)
}

func (p *tabPage) Navigate(ctx context.Context, url string) error {
	return p.run(ctx, untilNetworkIdle(chromedp.Navigate(url)))
}

func (p *tabPage) Reload(ctx context.Context) error {
	return p.run(ctx, untilNetworkIdle(chromedp.Reload()))
}

func (p *tabPage) Visible(ctx context.Context, l catalog.Locator) (bool, error) {
	var res probeResult
	if err := p.run(ctx, chromedp.Evaluate(visibleJS(l), &res)); err != nil {
		return false, fmt.Errorf("probe %s: %w", l.Name, err)
	}
	return res.Found, nil
}

func (p *tabPage) Text(ctx context.Context, l catalog.Locator) (string, error) {
	var res probeResult
	if err := p.run(ctx, chromedp.Evaluate(textJS(l), &res)); err != nil {
		return "", fmt.Errorf("read %s: %w", l.Name, err)
	}
	if !res.Found {
		return "", fmt.Errorf("read %s: no element matches %q", l.Name, l.Query)
	}
	return res.Text, nil
}

func (p *tabPage) Click(ctx context.Context, l catalog.Locator) error {
	var res probeResult
	if err := p.run(ctx, chromedp.Evaluate(clickJS(l), &res)); err != nil {
		return err
	}
	if !res.Found {
		return fmt.Errorf("no visible element matches %s", l.Name)
	}
	return nil
}

// Close closes the tab. Only the first call has an effect.
func (p *tabPage) Close() error {
	p.closeOnce.Do(func() {
		p.closeErr = chromedp.Cancel(p.ctx)
		p.cancel()
	})
	return p.closeErr
}

// untilNetworkIdle runs nav and then waits for the tab's networkIdle
// lifecycle event.
func untilNetworkIdle(nav chromedp.Action) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		idle := make(chan struct{})
		var once sync.Once

		lctx, cancel := context.WithCancel(ctx)
		defer cancel()
		chromedp.ListenTarget(lctx, func(ev any) {
			if e, ok := ev.(*page.EventLifecycleEvent); ok && e.Name == "networkIdle" {
				once.Do(func() { close(idle) })
			}
		})

		if err := nav.Do(ctx); err != nil {
			return err
		}
		select {
		case <-idle:
			return nil
		case <-ctx.Done():
			return fmt.Errorf("waiting for network idle: %w", ctx.Err())
		}
	})
}
