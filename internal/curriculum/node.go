package curriculum

import (
	"errors"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/mathlab/internal/diag"
)

// SkipChildren is returned by a Walk visitor to skip the subtree of the
// node it was called with.
var SkipChildren = errors.New("skip children")

// Node is one entry of a curriculum outline. It is internal (Children) or a
// leaf (Items), never both.
type Node struct {
	Key      string
	Label    string
	Children []*Node
	Items    []Item
	Range    hcl.Range

	itemRanges []hcl.Range
}

// IsLeaf reports whether the node carries items rather than children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// ItemRange returns the source range of the i-th item (0-based).
func (n *Node) ItemRange(i int) hcl.Range {
	if i < 0 || i >= len(n.itemRanges) {
		return n.Range
	}
	return n.itemRanges[i]
}

type tree struct {
	subject string
	source  string
	roots   []*Node
	byKey   map[string]*Node
}

// Set holds the curriculum trees of every subject. It is read-only once
// Load returns.
type Set struct {
	trees map[string]*tree
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{trees: make(map[string]*tree)}
}

// Subjects returns the subjects that declare a curriculum, sorted.
func (s *Set) Subjects() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.trees))
	for subject := range s.trees {
		out = append(out, subject)
	}
	sort.Strings(out)
	return out
}

// Source returns the file the subject's curriculum was loaded from.
func (s *Set) Source(subject string) string {
	if t := s.tree(subject); t != nil {
		return t.source
	}
	return ""
}

// Tree returns the top-level nodes of subject in declared order.
func (s *Set) Tree(subject string) []*Node {
	t := s.tree(subject)
	if t == nil {
		return nil
	}
	out := make([]*Node, len(t.roots))
	copy(out, t.roots)
	return out
}

// FindByKey returns the node of subject with the given key.
func (s *Set) FindByKey(subject, key string) (*Node, error) {
	t := s.tree(subject)
	if t == nil {
		return nil, diag.NotFound(diag.KindCurriculum, subject, key)
	}
	n, ok := t.byKey[key]
	if !ok {
		return nil, diag.NotFound(diag.KindCurriculum, subject, key)
	}
	return n, nil
}

// Walk visits every node of subject in pre-order, with depth 0 for the
// top level. A visitor error stops the walk and is returned, except
// SkipChildren which only prunes the current subtree.
func (s *Set) Walk(subject string, visit func(n *Node, depth int) error) error {
	t := s.tree(subject)
	if t == nil {
		return nil
	}
	return walkNodes(t.roots, 0, visit)
}

func walkNodes(nodes []*Node, depth int, visit func(*Node, int) error) error {
	for _, n := range nodes {
		err := visit(n, depth)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if err := walkNodes(n.Children, depth+1, visit); err != nil {
			return err
		}
	}
	return nil
}

// Leaves returns the leaves of subject in pre-order.
func (s *Set) Leaves(subject string) []*Node {
	var out []*Node
	_ = s.Walk(subject, func(n *Node, _ int) error {
		if n.IsLeaf() {
			out = append(out, n)
		}
		return nil
	})
	return out
}

func (s *Set) tree(subject string) *tree {
	if s == nil {
		return nil
	}
	return s.trees[subject]
}
