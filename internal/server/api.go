package server

import (
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/vk/mathlab/internal/ctxlog"
	"github.com/vk/mathlab/internal/curriculum"
	"github.com/vk/mathlab/internal/route"
)

type healthResponse struct {
	Status     string         `json:"status"`
	Version    uint64         `json:"version"`
	LoadedAt   time.Time      `json:"loaded_at"`
	Activities map[string]int `json:"activities"`
	Sessions   int            `json:"sessions"`
	Viewers    int            `json:"viewers"`
}

type activityJSON struct {
	Subject     string `json:"subject"`
	SubjectName string `json:"subject_name"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Order       *int   `json:"order,omitempty"`
	Route       string `json:"route"`
}

type nodeJSON struct {
	Key      string     `json:"key"`
	Label    string     `json:"label"`
	Route    string     `json:"route"`
	Children []nodeJSON `json:"children,omitempty"`
	Items    []itemJSON `json:"items,omitempty"`
}

type itemJSON struct {
	Kind   curriculum.Kind `json:"kind"`
	Title  string          `json:"title,omitempty"`
	Detail curriculum.Item `json:"detail"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.FromContext(r.Context()).Error("Failed to encode response.", "path", r.URL.Path, "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	cat := s.src.Catalog()
	if cat == nil {
		writeJSON(w, r, http.StatusServiceUnavailable, healthResponse{Status: "loading"})
		return
	}
	resp := healthResponse{
		Status:     "ok",
		Version:    cat.Version,
		LoadedAt:   cat.LoadedAt,
		Activities: cat.Counts(),
		Sessions:   s.opts.Sessions.Len(),
	}
	if s.opts.Hub != nil {
		resp.Viewers = s.opts.Hub.Clients()
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.opts.Reload == nil {
		writeError(w, r, http.StatusNotFound, "refresh is not enabled")
		return
	}
	version, err := s.opts.Reload(r.Context(), "manual")
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]uint64{"version": version})
}

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	cat := s.src.Catalog()
	subject := r.PathValue("subject")
	if cat == nil || !slices.Contains(cat.Subjects(), subject) {
		writeError(w, r, http.StatusNotFound, "unknown subject "+subject)
		return
	}
	out := []activityJSON{}
	name := s.label(cat, subject)
	for _, a := range cat.Registry.List(subject) {
		out = append(out, activityJSON{
			Subject:     a.Subject,
			SubjectName: name,
			Slug:        a.Slug,
			Title:       a.Meta.Title,
			Description: a.Meta.Description,
			Order:       a.Meta.Order,
			Route:       route.Activity(a.Subject, a.Slug).String(),
		})
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleCurriculum(w http.ResponseWriter, r *http.Request) {
	cat := s.src.Catalog()
	subject := r.PathValue("subject")
	if cat == nil {
		writeError(w, r, http.StatusNotFound, "unknown subject "+subject)
		return
	}
	roots := cat.Curriculum.Tree(subject)
	if roots == nil {
		writeError(w, r, http.StatusNotFound, "no curriculum for subject "+subject)
		return
	}
	writeJSON(w, r, http.StatusOK, nodesJSON(subject, roots))
}

func nodesJSON(subject string, nodes []*curriculum.Node) []nodeJSON {
	out := make([]nodeJSON, 0, len(nodes))
	for _, n := range nodes {
		nj := nodeJSON{
			Key:      n.Key,
			Label:    n.Label,
			Route:    route.Leaf(subject, n.Key).String(),
			Children: nodesJSON(subject, n.Children),
		}
		if len(n.Children) == 0 {
			nj.Children = nil
		}
		for _, it := range n.Items {
			nj.Items = append(nj.Items, itemJSON{Kind: it.Kind(), Title: it.ItemTitle(), Detail: it})
		}
		out = append(out, nj)
	}
	return out
}
