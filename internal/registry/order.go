package registry

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/mathlab/internal/activity"
	"gopkg.in/yaml.v3"
)

// orderFiles are the accepted names of a subject's ordering manifest, in
// lookup order. The bare "_order" form is one slug per line.
var orderFiles = []string{"_order.yaml", "_order.yml", "_order"}

// readOrder loads the subject's ordering manifest. It returns the entries,
// the file they came from, and no entries when the subject has none.
func readOrder(dir string) ([]string, string, error) {
	for _, name := range orderFiles {
		p := filepath.Join(dir, name)
		b, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, p, err
		}

		var entries []string
		if name == "_order" {
			entries = parsePlainOrder(b)
		} else if err := yaml.Unmarshal(b, &entries); err != nil {
			return nil, p, fmt.Errorf("expected a YAML list of slugs: %w", err)
		}
		return normalizeOrder(entries), p, nil
	}
	return nil, "", nil
}

func parsePlainOrder(b []byte) []string {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

func normalizeOrder(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		e = normalizeSlug(strings.TrimSpace(e))
		switch path.Ext(e) {
		case ".hcl", ".json":
			e = strings.TrimSuffix(e, path.Ext(e))
		}
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

// buildListing computes the enumeration order: manifest entries first, each
// once, then the remaining listed activities by (order, title, slug).
func (idx *subjectIndex) buildListing(logger *slog.Logger) []*activity.Activity {
	seen := make(map[string]bool, len(idx.all))
	listed := make([]*activity.Activity, 0, len(idx.all))

	for _, slug := range idx.order {
		a, ok := idx.bySlug[slug]
		switch {
		case !ok:
			logger.Warn("Ordering manifest names an unknown activity; skipping.", "file", idx.orderFile, "slug", slug)
		case seen[slug]:
			logger.Warn("Ordering manifest lists an activity twice; keeping the first.", "file", idx.orderFile, "slug", slug)
		case a.Listed():
			listed = append(listed, a)
		}
		seen[slug] = true
	}

	rest := make([]*activity.Activity, 0, len(idx.all))
	for _, a := range idx.all {
		if !seen[a.Slug] && a.Listed() {
			rest = append(rest, a)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		oi, oj := rest[i].Meta.SortOrder(), rest[j].Meta.SortOrder()
		if oi != oj {
			return oi < oj
		}
		if rest[i].Meta.Title != rest[j].Meta.Title {
			return rest[i].Meta.Title < rest[j].Meta.Title
		}
		return rest[i].Slug < rest[j].Slug
	})

	return append(listed, rest...)
}
