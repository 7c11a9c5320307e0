package server

import (
	"net/http"

	"github.com/vk/mathlab/internal/page"
	"github.com/vk/mathlab/internal/route"
)

// routeParam is the query parameter carrying the current route.
const routeParam = "route"

// Router reads and changes the route of a request. The route lives in the
// URL, so every view is shareable.
type Router struct{}

// Current returns the raw route of the request, "home" when absent.
func (Router) Current(r *http.Request) string {
	if v := r.URL.Query().Get(routeParam); v != "" {
		return v
	}
	return route.HomeName
}

// Goto sends the viewer to target. The next request renders it.
func (Router) Goto(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, page.Href(target), http.StatusSeeOther)
}
