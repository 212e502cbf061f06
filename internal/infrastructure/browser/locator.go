package browser

import (
	"fmt"

	"github.com/example/holdbot/internal/domain/catalog"
)

// locatorJS selects the elements matching l into `els` and evaluates body.
const locatorJS = `(() => {
	const norm = s => (s || '').replace(/\s+/g, ' ').trim().toLowerCase();
	const want = norm(%q);
	const label = el => norm(el.getAttribute('aria-label') || el.innerText || el.textContent);
	const shown = el => {
		const r = el.getBoundingClientRect();
		const st = window.getComputedStyle(el);
		return r.width > 0 && r.height > 0 && st.visibility !== 'hidden' && st.display !== 'none';
	};
	const els = Array.from(document.querySelectorAll(%q)).filter(el => !want || label(el).includes(want));
	%s
})()`

type probeResult struct {
	Found bool   `json:"found"`
	Text  string `json:"text"`
}

func visibleJS(l catalog.Locator) string {
	return fmt.Sprintf(locatorJS, l.Text, l.Query, `return { found: els.some(shown), text: '' };`)
}

func textJS(l catalog.Locator) string {
	return fmt.Sprintf(locatorJS, l.Text, l.Query,
		`const el = els[0];
	return el ? { found: true, text: (el.textContent || '').trim() } : { found: false, text: '' };`)
}

func clickJS(l catalog.Locator) string {
	return fmt.Sprintf(locatorJS, l.Text, l.Query,
		`const el = els.find(shown);
	if (!el) return { found: false, text: '' };
	el.scrollIntoView({ block: 'center' });
	el.click();
	return { found: true, text: '' };`)
}
