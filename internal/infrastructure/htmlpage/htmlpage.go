// Package htmlpage probes a saved catalog page without a browser.
package htmlpage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/example/holdbot/internal/domain/catalog"
)

// Document is a catalog.Probe over static HTML. Visibility is judged from
// markup only: the hidden attribute, aria-hidden and inline display or
// visibility styles on the element or any ancestor.
type Document struct {
	doc *goquery.Document
}

func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{doc: doc}, nil
}

func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func (d *Document) Visible(_ context.Context, l catalog.Locator) (bool, error) {
	sel, err := d.find(l)
	if err != nil {
		return false, err
	}
	found := false
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if shown(s) {
			found = true
		}
		return !found
	})
	return found, nil
}

func (d *Document) Text(_ context.Context, l catalog.Locator) (string, error) {
	sel, err := d.find(l)
	if err != nil {
		return "", err
	}
	if sel.Length() == 0 {
		return "", fmt.Errorf("read %s: no element matches %q", l.Name, l.Query)
	}
	return strings.TrimSpace(sel.First().Text()), nil
}

func (d *Document) find(l catalog.Locator) (*goquery.Selection, error) {
	m, err := cascadia.Compile(l.Query)
	if err != nil {
		return nil, fmt.Errorf("locator %s: %w", l.Name, err)
	}
	sel := d.doc.FindMatcher(m)
	want := normalize(l.Text)
	if want == "" {
		return sel, nil
	}
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(label(s), want)
	}), nil
}

func label(s *goquery.Selection) string {
	if v, ok := s.Attr("aria-label"); ok && strings.TrimSpace(v) != "" {
		return normalize(v)
	}
	return normalize(s.Text())
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func shown(s *goquery.Selection) bool {
	for n := s; n.Length() > 0; n = n.Parent() {
		if _, ok := n.Attr("hidden"); ok {
			return false
		}
		if v, _ := n.Attr("aria-hidden"); v == "true" {
			return false
		}
		style := strings.ReplaceAll(strings.ToLower(n.AttrOr("style", "")), " ", "")
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			return false
		}
	}
	return true
}
