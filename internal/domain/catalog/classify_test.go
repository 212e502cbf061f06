package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/holdbot/internal/domain/catalog"
)

// probe answers Visible from a set of visible locator names.
type probe struct {
	visible map[string]bool
	texts   map[string]string
	errs    map[string]error
	panics  map[string]bool
	calls   []string
}

func (p *probe) Visible(_ context.Context, l catalog.Locator) (bool, error) {
	p.calls = append(p.calls, l.Name)
	if p.panics[l.Name] {
		panic("selector engine crashed")
	}
	if err := p.errs[l.Name]; err != nil {
		return false, err
	}
	return p.visible[l.Name], nil
}

func (p *probe) Text(_ context.Context, l catalog.Locator) (string, error) {
	if p.panics[l.Name] {
		panic("selector engine crashed")
	}
	t, ok := p.texts[l.Name]
	if !ok {
		return "", errors.New("no such element")
	}
	return t, nil
}

func visible(names ...string) *probe {
	p := &probe{visible: map[string]bool{}}
	for _, n := range names {
		p.visible[n] = true
	}
	return p
}

func TestClassifyPriority(t *testing.T) {
	owned := catalog.GoToShelfLocator.Name
	hold := catalog.PlaceHoldLocator.Name
	borrow := catalog.BorrowLocator.Name

	tests := []struct {
		name    string
		visible []string
		want    catalog.State
	}{
		{"nothing visible", nil, catalog.StateUnavailable},
		{"shelf only", []string{owned}, catalog.StateAlreadyOwned},
		{"hold only", []string{hold}, catalog.StateHoldAvailable},
		{"borrow only", []string{borrow}, catalog.StateBorrowAvailable},
		{"shelf beats hold", []string{owned, hold}, catalog.StateAlreadyOwned},
		{"shelf beats borrow", []string{owned, borrow}, catalog.StateAlreadyOwned},
		{"hold beats borrow", []string{hold, borrow}, catalog.StateHoldAvailable},
		{"all three", []string{owned, hold, borrow}, catalog.StateAlreadyOwned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := catalog.Classify(context.Background(), visible(tt.visible...), catalog.DefaultRules)
			assert.Equal(t, tt.want, c.State)
			assert.NoError(t, c.Err)
		})
	}
}

func TestClassifyControl(t *testing.T) {
	c := catalog.Classify(context.Background(), visible(catalog.BorrowLocator.Name), catalog.DefaultRules)
	require.NotNil(t, c.Control)
	assert.Equal(t, catalog.BorrowLocator, *c.Control)

	c = catalog.Classify(context.Background(), visible(catalog.GoToShelfLocator.Name), catalog.DefaultRules)
	assert.Nil(t, c.Control)
}

func TestClassifyStopsAtFirstMatch(t *testing.T) {
	p := visible(catalog.GoToShelfLocator.Name, catalog.PlaceHoldLocator.Name)
	catalog.Classify(context.Background(), p, catalog.DefaultRules)
	assert.Equal(t, []string{catalog.GoToShelfLocator.Name}, p.calls)
}

func TestClassifyProbeError(t *testing.T) {
	p := visible(catalog.BorrowLocator.Name)
	p.errs = map[string]error{catalog.PlaceHoldLocator.Name: errors.New("target closed")}

	c := catalog.Classify(context.Background(), p, catalog.DefaultRules)
	assert.Equal(t, catalog.StateClassificationError, c.State)
	require.Error(t, c.Err)
	assert.ErrorIs(t, c.Err, catalog.ErrClassification)
	assert.Contains(t, c.Err.Error(), "target closed")
	assert.NotEmpty(t, catalog.StackOf(c.Err))
}

func TestClassifyPanic(t *testing.T) {
	p := visible()
	p.panics = map[string]bool{catalog.GoToShelfLocator.Name: true}

	c := catalog.Classify(context.Background(), p, catalog.DefaultRules)
	assert.Equal(t, catalog.StateClassificationError, c.State)
	assert.ErrorIs(t, c.Err, catalog.ErrClassification)
	assert.Contains(t, c.Err.Error(), "selector engine crashed")
}

func TestReadTitle(t *testing.T) {
	p := visible()
	p.texts = map[string]string{catalog.TitleLocator.Name: "  The Left Hand of Darkness \n"}
	assert.Equal(t, "The Left Hand of Darkness", catalog.ReadTitle(context.Background(), p, catalog.TitleLocator))

	p.texts = map[string]string{catalog.TitleLocator.Name: "   "}
	assert.Equal(t, catalog.UnknownTitle, catalog.ReadTitle(context.Background(), p, catalog.TitleLocator))

	assert.Equal(t, catalog.UnknownTitle, catalog.ReadTitle(context.Background(), visible(), catalog.TitleLocator))

	p.panics = map[string]bool{catalog.TitleLocator.Name: true}
	assert.Equal(t, catalog.UnknownTitle, catalog.ReadTitle(context.Background(), p, catalog.TitleLocator))
}

func TestClassifyPage(t *testing.T) {
	p := visible(catalog.PlaceHoldLocator.Name)
	p.texts = map[string]string{catalog.TitleLocator.Name: "Dune"}

	c := catalog.ClassifyPage(context.Background(), p, catalog.TitleLocator, catalog.DefaultRules)
	assert.Equal(t, catalog.StateHoldAvailable, c.State)
	assert.Equal(t, "Dune", c.Title)
}
