// Package testutil holds in-memory stand-ins for the browser, notifier and
// session store.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/example/holdbot/internal/domain/catalog"
	"github.com/example/holdbot/internal/domain/session"
)

// Events records the order of interesting calls across fakes.
type Events struct {
	mu  sync.Mutex
	log []string
}

func (e *Events) Add(format string, args ...any) {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = append(e.log, fmt.Sprintf(format, args...))
}

func (e *Events) List() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.log...)
}

// Site describes what a fake page shows for one URL.
type Site struct {
	Title string
	// Visible lists locator names that are visible on the page.
	Visible   []string
	NavErr    error
	ReloadErr error
	ProbeErr  error
	ClickErr  error
	// ClickPanics makes Click panic.
	ClickPanics bool
}

type Browser struct {
	Sites      map[string]Site
	StartErr   error
	NewPageErr error
	Events     *Events

	Cookies []catalog.Cookie
	Started bool
	Closed  int
	Pages   []*Page
}

func (b *Browser) Start(_ context.Context, cookies []catalog.Cookie) error {
	b.Events.Add("browser.start")
	if b.StartErr != nil {
		return b.StartErr
	}
	b.Started = true
	b.Cookies = cookies
	return nil
}

func (b *Browser) NewPage(_ context.Context) (catalog.Page, error) {
	if !b.Started {
		return nil, errors.New("browser not started")
	}
	if b.NewPageErr != nil {
		return nil, b.NewPageErr
	}
	p := &Page{browser: b}
	b.Pages = append(b.Pages, p)
	return p, nil
}

func (b *Browser) Close() error {
	b.Closed++
	return nil
}

type Page struct {
	browser *Browser
	site    Site

	URL     string
	Reloads int
	Clicks  []string
	Closed  int
}

func (p *Page) Navigate(_ context.Context, url string) error {
	p.browser.Events.Add("navigate %s", url)
	p.URL = url
	p.site = p.browser.Sites[url]
	return p.site.NavErr
}

func (p *Page) Reload(_ context.Context) error {
	p.Reloads++
	return p.site.ReloadErr
}

func (p *Page) Visible(_ context.Context, l catalog.Locator) (bool, error) {
	if p.site.ProbeErr != nil {
		return false, p.site.ProbeErr
	}
	for _, n := range p.site.Visible {
		if n == l.Name {
			return true, nil
		}
	}
	return false, nil
}

func (p *Page) Text(_ context.Context, l catalog.Locator) (string, error) {
	if l.Name == catalog.TitleLocator.Name && p.site.Title != "" {
		return p.site.Title, nil
	}
	return "", fmt.Errorf("no element matches %q", l.Query)
}

func (p *Page) Click(_ context.Context, l catalog.Locator) error {
	p.Clicks = append(p.Clicks, l.Name)
	if p.site.ClickPanics {
		panic("click handler crashed")
	}
	return p.site.ClickErr
}

func (p *Page) Close() error {
	p.Closed++
	return nil
}

type Success struct {
	Action catalog.Action
	Title  string
}

type Alert struct {
	Message string
	Stack   string
}

type Notifier struct {
	Err error

	Successes []Success
	Alerts    []Alert
}

func (n *Notifier) NotifySuccess(_ context.Context, action catalog.Action, title string) error {
	n.Successes = append(n.Successes, Success{Action: action, Title: title})
	return n.Err
}

func (n *Notifier) NotifyError(_ context.Context, message, stack string) error {
	n.Alerts = append(n.Alerts, Alert{Message: message, Stack: stack})
	return n.Err
}

// Store is an in-memory session.Store.
type Store struct {
	Blob    *session.Blob
	LoadErr error
	SaveErr error
	Saves   int
}

func (s *Store) Exists(context.Context) (bool, error) {
	return s.Blob != nil, nil
}

func (s *Store) Load(context.Context) (session.Blob, error) {
	if s.LoadErr != nil {
		return session.Blob{}, s.LoadErr
	}
	if s.Blob == nil {
		return session.Blob{}, session.ErrNotFound
	}
	return *s.Blob, nil
}

func (s *Store) Save(_ context.Context, b session.Blob) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Saves++
	s.Blob = &b
	return nil
}

type Bootstrapper struct {
	Blob   session.Blob
	Err    error
	Events *Events
	Calls  int
}

func (b *Bootstrapper) Capture(context.Context) (session.Blob, error) {
	b.Calls++
	b.Events.Add("bootstrap")
	return b.Blob, b.Err
}

// Sleeper records requested sleeps without waiting.
type Sleeper struct {
	mu     sync.Mutex
	Sleeps []time.Duration
}

func (s *Sleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.Sleeps = append(s.Sleeps, d)
	s.mu.Unlock()
	return ctx.Err()
}
