package catalog

import (
	"context"
	"fmt"
	"strings"
)

// UnknownTitle is reported when the title element cannot be read.
const UnknownTitle = "Unknown"

// Rule maps a visible affordance to a state.
type Rule struct {
	State   State
	Locator Locator
}

// Classification is the result of one pass over a rendered page.
type Classification struct {
	State State
	Title string
	// Control is the element to click for HoldAvailable and BorrowAvailable.
	Control *Locator
	// Err is set only for StateClassificationError.
	Err error
}

// ReadTitle is best-effort: any failure yields UnknownTitle.
func ReadTitle(ctx context.Context, p Probe, l Locator) (title string) {
	defer func() {
		if r := recover(); r != nil {
			title = UnknownTitle
		}
	}()
	t, err := p.Text(ctx, l)
	if err != nil {
		return UnknownTitle
	}
	t = strings.TrimSpace(t)
	if t == "" {
		return UnknownTitle
	}
	return t
}

// Classify walks rules in order and returns the state of the first visible
// affordance, or StateUnavailable when none is visible. A probe error or
// panic yields StateClassificationError; exactly one state is always returned.
func Classify(ctx context.Context, p Probe, rules []Rule) (c Classification) {
	defer func() {
		if r := recover(); r != nil {
			c = Classification{State: StateClassificationError, Err: FromPanic(ErrClassification, "", r)}
		}
	}()
	for i := range rules {
		rule := rules[i]
		ok, err := p.Visible(ctx, rule.Locator)
		if err != nil {
			return Classification{
				State: StateClassificationError,
				Err:   NewError(ErrClassification, "", fmt.Errorf("probe %s: %w", rule.Locator.Name, err)),
			}
		}
		if !ok {
			continue
		}
		out := Classification{State: rule.State}
		if _, acts := rule.State.Action(); acts {
			out.Control = &rule.Locator
		}
		return out
	}
	return Classification{State: StateUnavailable}
}

// ClassifyPage reads the title and classifies p.
func ClassifyPage(ctx context.Context, p Probe, title Locator, rules []Rule) Classification {
	t := ReadTitle(ctx, p, title)
	c := Classify(ctx, p, rules)
	c.Title = t
	return c
}
