// Package scroll keeps the viewport steady across rerenders.
//
// A widget change submits the page and the browser loads a fresh document
// for the same route. The snippet placed before the main content restores
// the offset saved for the view's key and keeps saving it, throttled, while
// the viewer scrolls. Offsets live in sessionStorage: they survive rerenders
// of one route and are dropped when the viewer moves to another route.
//
// A component may instead ask for one specific element to be shown after
// the next render with RequestAnchor. The flag lives in the route's keyed
// state and is consumed by exactly one render.
//
// Scroll handling never blocks or fails a render. Storage errors in the
// browser are swallowed.
package scroll

import (
	"bytes"
	"html/template"

	"github.com/vk/mathlab/internal/session"
)

// Prefix starts every storage key written by the snippet.
const Prefix = "mathlab:scroll:"

// LastKey records the key of the most recently rendered view.
const LastKey = Prefix + "last"

// ThrottleMillis is the minimum interval between two saves while scrolling.
const ThrottleMillis = 150

const anchorStateKey = "scroll.anchor"

// Key derives the storage key of a view from its route and an optional
// caller-supplied suffix.
func Key(route, suffix string) string {
	if suffix == "" {
		return Prefix + route
	}
	return Prefix + route + ":" + suffix
}

// RequestAnchor asks the next render of the state's route to scroll to the
// element with the given id instead of restoring the saved offset.
func RequestAnchor(state *session.Scoped, anchor string) {
	if anchor == "" {
		return
	}
	state.Set(anchorStateKey, anchor)
}

// ConsumeAnchor returns and clears the pending anchor, or "".
func ConsumeAnchor(state *session.Scoped) string {
	v, ok := state.Pop(anchorStateKey)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

var snippet = template.Must(template.New("scroll").Parse(`<script data-scroll-key="{{.Key}}">
(function () {
  var key = {{.Key}}, lastKey = {{.LastKey}}, anchor = {{.Anchor}};
  var store;
  try { store = window.sessionStorage; } catch (e) { return; }
  try {
    if ("scrollRestoration" in history) { history.scrollRestoration = "manual"; }
    var last = store.getItem(lastKey);
    if (last && last !== key) { store.removeItem(last); }
    store.setItem(lastKey, key);
  } catch (e) {}

  function save() {
    try { store.setItem(key, String(window.scrollY || window.pageYOffset || 0)); } catch (e) {}
  }
  function restore() {
    try {
      if (anchor) {
        var el = document.getElementById(anchor);
        if (el) { el.scrollIntoView(); save(); return; }
      }
      var y = parseInt(store.getItem(key), 10);
      if (!isNaN(y)) { window.scrollTo(0, y); }
    } catch (e) {}
  }

  var pending = false;
  window.addEventListener("scroll", function () {
    if (pending) { return; }
    pending = true;
    setTimeout(function () { pending = false; save(); }, {{.Throttle}});
  }, { passive: true });
  window.addEventListener("beforeunload", save);
  window.addEventListener("pagehide", save);

  if (document.readyState === "loading") {
    document.addEventListener("DOMContentLoaded", restore);
  } else {
    restore();
  }
})();
</script>`))

// Snippet returns the inline script for the view with the given key. A
// non-empty anchor takes precedence over the saved offset.
func Snippet(key, anchor string) template.HTML {
	var buf bytes.Buffer
	err := snippet.Execute(&buf, struct {
		Key, LastKey, Anchor string
		Throttle             int
	}{key, LastKey, anchor, ThrottleMillis})
	if err != nil {
		return ""
	}
	return template.HTML(buf.String())
}
