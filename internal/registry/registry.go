package registry

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/mathlab/internal/activity"
	"github.com/vk/mathlab/internal/diag"
	"github.com/vk/mathlab/internal/handlers"
)

// Registry maps (subject, slug) to activities.
type Registry struct {
	root     string
	handlers *handlers.Handlers
	subjects map[string]*subjectIndex
}

type subjectIndex struct {
	subject   string
	bySlug    map[string]*activity.Activity
	all       []*activity.Activity // every activity, sorted by slug
	order     []string             // entries of the ordering manifest
	orderFile string
	listed    []*activity.Activity
}

// New creates an empty registry rooted at the activities directory. The
// handlers table may be nil, in which case no activity has a render entry.
func New(root string, h *handlers.Handlers) *Registry {
	return &Registry{
		root:     root,
		handlers: h,
		subjects: make(map[string]*subjectIndex),
	}
}

// Root returns the activities directory.
func (r *Registry) Root() string { return r.root }

// Get returns the activity identified by (subject, slug). Hidden and
// reserved activities resolve too.
func (r *Registry) Get(subject, slug string) (*activity.Activity, error) {
	slug = normalizeSlug(slug)
	idx, ok := r.subjects[subject]
	if !ok {
		return nil, diag.NotFound(diag.KindActivity, subject, slug)
	}
	a, ok := idx.bySlug[slug]
	if !ok {
		return nil, diag.NotFound(diag.KindActivity, subject, slug)
	}
	return a, nil
}

// List returns the listed activities of subject in enumeration order:
// ordering-manifest entries first, then the rest by (order, title, slug).
func (r *Registry) List(subject string) []*activity.Activity {
	idx, ok := r.subjects[subject]
	if !ok {
		return nil
	}
	out := make([]*activity.Activity, len(idx.listed))
	copy(out, idx.listed)
	return out
}

// All returns every activity of subject, hidden ones included, by slug.
func (r *Registry) All(subject string) []*activity.Activity {
	idx, ok := r.subjects[subject]
	if !ok {
		return nil
	}
	out := make([]*activity.Activity, len(idx.all))
	copy(out, idx.all)
	return out
}

// Subjects lists the discovered subjects in sorted order.
func (r *Registry) Subjects() []string {
	out := make([]string, 0, len(r.subjects))
	for s := range r.subjects {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of activities of subject, hidden ones included.
func (r *Registry) Count(subject string) int {
	if idx, ok := r.subjects[subject]; ok {
		return len(idx.all)
	}
	return 0
}

func normalizeSlug(slug string) string {
	return strings.Trim(strings.ReplaceAll(filepath.ToSlash(slug), `\`, "/"), "/")
}
