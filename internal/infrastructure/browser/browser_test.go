package browser

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/holdbot/internal/domain/catalog"
)

func TestCookieConversion(t *testing.T) {
	captured := []*network.Cookie{
		{Name: "sid", Value: "abc", Domain: ".lib.example.org", Path: "/", Expires: 1893456000, HTTPOnly: true, Secure: true, SameSite: network.CookieSameSiteLax},
		nil,
		{Name: "pref", Value: "grid", Domain: "lib.example.org", Path: "/", Expires: -1, Session: true},
	}

	cookies := fromCDP(captured)
	require.Len(t, cookies, 2)
	assert.Equal(t, catalog.Cookie{
		Name: "sid", Value: "abc", Domain: ".lib.example.org", Path: "/",
		Expires: 1893456000, HTTPOnly: true, Secure: true, SameSite: "Lax",
	}, cookies[0])

	params := toCDP(cookies)
	require.Len(t, params, 2)
	require.NotNil(t, params[0].Expires)
	assert.Equal(t, int64(1893456000), params[0].Expires.Time().Unix())
	assert.Equal(t, network.CookieSameSiteLax, params[0].SameSite)
	assert.True(t, params[0].HTTPOnly)
	assert.Nil(t, params[1].Expires)
	assert.Empty(t, params[1].SameSite)
}

func TestLocatorScripts(t *testing.T) {
	l := catalog.GoToShelfLocator

	for name, js := range map[string]string{
		"visible": visibleJS(l),
		"text":    textJS(l),
		"click":   clickJS(l),
	} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, js, `document.querySelectorAll("div.circ-option.circ-exit-option button span[role=\"text\"]")`)
			assert.Contains(t, js, `norm("Go To Shelf")`)
			assert.True(t, strings.HasPrefix(js, "(() => {"))
			assert.True(t, strings.HasSuffix(js, "})()"))
		})
	}
	assert.Contains(t, clickJS(l), "el.click()")
	assert.NotContains(t, visibleJS(l), "el.click()")
}

func TestNewPageBeforeStart(t *testing.T) {
	e := New(Options{Headless: true}, nil)
	_, err := e.NewPage(context.Background())
	assert.Error(t, err)
	assert.NoError(t, e.Close())
}

func TestWaitForEnter(t *testing.T) {
	require.NoError(t, waitForEnter(context.Background(), strings.NewReader("\n")))
	assert.Error(t, waitForEnter(context.Background(), strings.NewReader("")))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	r, w := io.Pipe()
	defer w.Close()
	assert.ErrorIs(t, waitForEnter(ctx, r), context.DeadlineExceeded)
}
