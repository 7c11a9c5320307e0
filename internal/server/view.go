package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vk/mathlab/internal/activity"
	"github.com/vk/mathlab/internal/catalog"
	"github.com/vk/mathlab/internal/ctxlog"
	"github.com/vk/mathlab/internal/curriculum"
	"github.com/vk/mathlab/internal/diag"
	"github.com/vk/mathlab/internal/nav"
	"github.com/vk/mathlab/internal/page"
	"github.com/vk/mathlab/internal/render"
	"github.com/vk/mathlab/internal/route"
	"github.com/vk/mathlab/internal/scroll"
)

// target is a resolved route.
type target struct {
	route    route.Route
	activity *activity.Activity
	node     *curriculum.Node
}

// resolve maps a raw route onto the catalog. An unknown or invalid route
// resolves to the landing page and returns the lookup error.
func resolve(cat *catalog.Catalog, raw string) (target, error) {
	rt, err := route.Parse(raw)
	if err != nil {
		return target{route: route.Home()}, err
	}
	switch rt.Kind {
	case route.KindActivity:
		a, err := cat.Registry.Get(rt.Subject, rt.Slug)
		if err != nil {
			return target{route: route.Home()}, err
		}
		return target{route: rt, activity: a}, nil
	case route.KindLeaf:
		n, err := cat.Curriculum.FindByKey(rt.Subject, rt.Key)
		if err != nil {
			return target{route: route.Home()}, err
		}
		return target{route: rt, node: n}, nil
	default:
		return target{route: rt}, nil
	}
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	cat := s.src.Catalog()
	if cat == nil {
		http.Error(w, "content is not loaded", http.StatusServiceUnavailable)
		return
	}

	raw := s.router.Current(r)
	t, lookupErr := resolve(cat, raw)
	rs := t.route.String()

	_, st := s.opts.Sessions.FromRequest(w, r)
	state := st.Scope(rs)

	values := r.URL.Query()
	values.Del(routeParam)
	p := page.New(rs, values, state)

	status := http.StatusOK
	if lookupErr != nil {
		status = http.StatusNotFound
		kind := diag.KindRoute
		var le *diag.LookupError
		if errors.As(lookupErr, &le) {
			kind = le.Kind
		}
		s.opts.Metrics.LookupError(kind)
		logger.Warn("Route did not resolve; showing the landing page.", "route", raw, "error", lookupErr)
		p.Diagnostic("요청한 페이지를 찾을 수 없습니다: "+raw, lookupErr.Error())
	}

	groups := nav.Build(s.subjects(cat), cat.Registry, cat.Curriculum, t.route)
	rr := render.New(cat.Registry, s.opts.Metrics)

	switch t.route.Kind {
	case route.KindActivity:
		p.Title(t.activity.Meta.Title)
		if t.activity.Meta.Description != "" {
			p.Caption(t.activity.Meta.Description)
		}
		if err := rr.Activity(ctx, p, t.activity); err != nil {
			logger.Debug("Activity view rendered with a diagnostic.", "route", rs)
		}
	case route.KindLeaf:
		p.Title(t.node.Label)
		if t.node.IsLeaf() {
			if err := rr.Leaf(ctx, p, t.node); err != nil {
				logger.Debug("Curriculum view rendered with diagnostics.", "route", rs, "error", err)
			}
		} else {
			rr.Outline(p, t.route.Subject, t.node)
		}
	default:
		s.home(p, groups)
	}

	doc := document{
		Title:      p.DocumentTitle(),
		SiteTitle:  s.opts.Title,
		Route:      rs,
		Groups:     groups,
		Body:       p.Body(),
		Scroll:     scroll.Snippet(scroll.Key(rs, p.ScrollSuffix()), scroll.ConsumeAnchor(state)),
		LiveReload: s.opts.Hub != nil,
		Version:    cat.Version,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := layout.Execute(w, doc); err != nil {
		logger.Error("Failed to write view.", "route", rs, "error", err)
	}
	s.opts.Metrics.View(t.route.Kind.String(), time.Since(start).Seconds())
}

// home writes the landing page: one section per sidebar group.
func (s *Server) home(p *page.Page, groups []nav.Group) {
	p.Title(s.opts.Title)
	p.Text("왼쪽 메뉴에서 단원이나 활동을 고르세요.")
	for _, g := range groups {
		p.Header(g.Subject.Label)
		for _, e := range g.Outline {
			p.Link(e.Label, e.Route)
		}
		if len(g.Activities) > 0 {
			p.Caption(fmt.Sprintf("활동 %d개", len(g.Activities)))
			for _, e := range g.Activities {
				p.Link(e.Label, e.Route)
			}
		}
	}
}

// handleGoto redirects to the route named by the query. An optional anchor
// is shown after the redirected render instead of the saved offset.
func (s *Server) handleGoto(w http.ResponseWriter, r *http.Request) {
	raw := s.router.Current(r)
	if rt, err := route.Parse(raw); err == nil {
		raw = rt.String()
		if anchor := r.URL.Query().Get("anchor"); anchor != "" {
			_, st := s.opts.Sessions.FromRequest(w, r)
			scroll.RequestAnchor(st.Scope(raw), anchor)
		}
	}
	s.router.Goto(w, r, raw)
}
