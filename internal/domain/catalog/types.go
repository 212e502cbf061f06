package catalog

import (
	"fmt"
	"net/url"
	"strings"
)

// BookTarget is one catalog page to check. Identity is the URL string.
type BookTarget struct {
	URL  string
	Note string
}

func (b BookTarget) Validate() error {
	u, err := url.ParseRequestURI(strings.TrimSpace(b.URL))
	if err != nil {
		return fmt.Errorf("book url %q: %w", b.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("book url %q: scheme must be http or https", b.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("book url %q: missing host", b.URL)
	}
	return nil
}

// Dedupe keeps the first occurrence of every URL, preserving order.
func Dedupe(targets []BookTarget) []BookTarget {
	seen := make(map[string]struct{}, len(targets))
	out := make([]BookTarget, 0, len(targets))
	for _, t := range targets {
		t.URL = strings.TrimSpace(t.URL)
		if _, ok := seen[t.URL]; ok {
			continue
		}
		seen[t.URL] = struct{}{}
		out = append(out, t)
	}
	return out
}

type State string

const (
	StateAlreadyOwned        State = "already_owned"
	StateHoldAvailable       State = "hold_available"
	StateBorrowAvailable     State = "borrow_available"
	StateUnavailable         State = "unavailable"
	StateClassificationError State = "classification_error"
)

// Action is the label used when reporting a successful click.
type Action string

const (
	ActionHold   Action = "Put a Hold on"
	ActionBorrow Action = "Borrowed"
)

// Action returns the action taken for s, if any.
func (s State) Action() (Action, bool) {
	switch s {
	case StateHoldAvailable:
		return ActionHold, true
	case StateBorrowAvailable:
		return ActionBorrow, true
	default:
		return "", false
	}
}

// Outcome is produced exactly once per BookTarget.
type Outcome struct {
	URL         string
	State       State
	Action      Action
	Succeeded   bool
	BookTitle   string
	ErrorDetail string
}

// Skipped reports a negative outcome that is neither a failure nor an error.
func (o Outcome) Skipped() bool {
	return !o.Succeeded && o.ErrorDetail == ""
}
