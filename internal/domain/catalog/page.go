package catalog

import "context"

// Locator finds an element by CSS query, optionally narrowed to elements
// whose accessible text (aria-label, else text content) contains Text,
// compared case-insensitively after collapsing whitespace.
type Locator struct {
	Name  string
	Query string
	Text  string
}

// Probe is the read side of a rendered page.
type Probe interface {
	Visible(ctx context.Context, l Locator) (bool, error)
	Text(ctx context.Context, l Locator) (string, error)
}

// Page is a live page owned by a single book check.
type Page interface {
	Probe
	// Navigate and Reload return once the page reports network quiescence.
	Navigate(ctx context.Context, url string) error
	Reload(ctx context.Context) error
	Click(ctx context.Context, l Locator) error
	Close() error
}

// Browser is the authenticated browsing engine shared by a run.
type Browser interface {
	Start(ctx context.Context, cookies []Cookie) error
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// Cookie is one browser cookie as captured after login.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires,omitempty"`
	HTTPOnly bool    `json:"httpOnly,omitempty"`
	Secure   bool    `json:"secure,omitempty"`
	Session  bool    `json:"session,omitempty"`
	SameSite string  `json:"sameSite,omitempty"`
}

type Notifier interface {
	NotifySuccess(ctx context.Context, action Action, title string) error
	NotifyError(ctx context.Context, message, stack string) error
}
