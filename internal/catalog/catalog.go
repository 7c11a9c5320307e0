// Package catalog builds the read-only content snapshot the server renders
// from: the activity registry and the curriculum trees, validated against
// each other.
package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"time"

	"github.com/vk/mathlab/internal/ctxlog"
	"github.com/vk/mathlab/internal/curriculum"
	"github.com/vk/mathlab/internal/handlers"
	"github.com/vk/mathlab/internal/registry"
)

// Directory names under the content root.
const (
	ActivitiesDir = "activities"
	CurriculumDir = "curriculum"
)

// Catalog is one immutable content snapshot.
type Catalog struct {
	Registry   *registry.Registry
	Curriculum *curriculum.Set
	Version    uint64
	LoadedAt   time.Time
}

// Load discovers the activities and curriculum trees under root and checks
// every activity reference. Problems from both halves are reported
// together, each as a *diag.LoadError.
func Load(ctx context.Context, root string, h *handlers.Handlers) (*Catalog, error) {
	logger := ctxlog.FromContext(ctx)

	reg, regErr := registry.Build(ctx, filepath.Join(root, ActivitiesDir), h)
	set, setErr := curriculum.Load(ctx, filepath.Join(root, CurriculumDir))
	if err := errors.Join(regErr, setErr); err != nil {
		return nil, err
	}
	if err := set.Validate(reg); err != nil {
		return nil, err
	}

	logger.Debug("Catalog built.", "root", root)
	return &Catalog{Registry: reg, Curriculum: set, LoadedAt: time.Now()}, nil
}

// Subjects returns every subject with activities or a curriculum, sorted.
func (c *Catalog) Subjects() []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range append(c.Registry.Subjects(), c.Curriculum.Subjects()...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// Counts returns the number of activities per subject, hidden ones included.
func (c *Catalog) Counts() map[string]int {
	out := map[string]int{}
	for _, s := range c.Registry.Subjects() {
		out[s] = c.Registry.Count(s)
	}
	return out
}
