package browser

import (
	"context"

	"github.com/chromedp/chromedp"
)

type Options struct {
	Headless  bool
	NoSandbox bool
	UserAgent string
	// ExecPath overrides Chrome discovery when set.
	ExecPath string
}

// NewAllocator creates a Chrome exec allocator context from o.
func NewAllocator(parent context.Context, o Options) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", o.Headless),
		chromedp.Flag("no-sandbox", o.NoSandbox),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1440, 900),
	)
	if o.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(o.UserAgent))
	}
	if o.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(o.ExecPath))
	}
	return chromedp.NewExecAllocator(parent, opts...)
}
