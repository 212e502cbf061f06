package htmlpage_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/holdbot/internal/domain/catalog"
	"github.com/example/holdbot/internal/infrastructure/htmlpage"
)

func parse(t *testing.T, html string) *htmlpage.Document {
	t.Helper()
	doc, err := htmlpage.Parse(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func classify(t *testing.T, doc *htmlpage.Document) catalog.Classification {
	t.Helper()
	return catalog.ClassifyPage(context.Background(), doc, catalog.TitleLocator, catalog.DefaultRules)
}

func TestClassifyFixtures(t *testing.T) {
	tests := []struct {
		file  string
		state catalog.State
		title string
	}{
		{"hold.html", catalog.StateHoldAvailable, "Project Hail Mary"},
		{"owned.html", catalog.StateAlreadyOwned, "Piranesi"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			doc, err := htmlpage.Open(filepath.Join("testdata", tt.file))
			require.NoError(t, err)

			c := classify(t, doc)
			assert.Equal(t, tt.state, c.State)
			assert.Equal(t, tt.title, c.Title)
			assert.NoError(t, c.Err)
		})
	}
}

func TestVisibility(t *testing.T) {
	tests := []struct {
		name string
		html string
		want bool
	}{
		{"plain", `<button>Borrow</button>`, true},
		{"hidden attribute", `<button hidden>Borrow</button>`, false},
		{"hidden ancestor", `<div hidden><button>Borrow</button></div>`, false},
		{"aria hidden", `<div aria-hidden="true"><button>Borrow</button></div>`, false},
		{"display none", `<button style="display:none">Borrow</button>`, false},
		{"visibility hidden", `<div style="visibility: hidden"><button>Borrow</button></div>`, false},
		{"one of two visible", `<button hidden>Borrow</button><button>Borrow now</button>`, true},
		{"role button", `<a role="button">borrow</a>`, true},
		{"text mismatch", `<button>Return</button>`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, `<html><body>`+tt.html+`</body></html>`)
			ok, err := doc.Visible(context.Background(), catalog.BorrowLocator)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestAriaLabelWins(t *testing.T) {
	doc := parse(t, `<button aria-label="Borrow this title">Get it</button>`)
	ok, err := doc.Visible(context.Background(), catalog.BorrowLocator)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnavailablePage(t *testing.T) {
	doc := parse(t, `<h1 class="screen-title-circ-title">Dune</h1><button>Notify me</button>`)
	c := classify(t, doc)
	assert.Equal(t, catalog.StateUnavailable, c.State)
	assert.Equal(t, "Dune", c.Title)
}

func TestMissingTitle(t *testing.T) {
	doc := parse(t, `<button>Place Hold</button>`)
	_, err := doc.Text(context.Background(), catalog.TitleLocator)
	assert.Error(t, err)
	assert.Equal(t, catalog.UnknownTitle, classify(t, doc).Title)
}

func TestInvalidSelector(t *testing.T) {
	doc := parse(t, `<button>Borrow</button>`)
	_, err := doc.Visible(context.Background(), catalog.Locator{Name: "broken", Query: `button[`})
	assert.Error(t, err)

	c := catalog.Classify(context.Background(), doc, []catalog.Rule{
		{State: catalog.StateBorrowAvailable, Locator: catalog.Locator{Name: "broken", Query: `button[`}},
	})
	assert.Equal(t, catalog.StateClassificationError, c.State)
}
