// Package nav builds the sidebar: one collapsible group per subject, in the
// configured subject order, holding the curriculum outline and the activity
// listing of that subject.
package nav

import (
	"github.com/vk/mathlab/internal/activity"
	"github.com/vk/mathlab/internal/curriculum"
	"github.com/vk/mathlab/internal/page"
	"github.com/vk/mathlab/internal/route"
)

// Subject is a configured subject: its directory name and display label.
type Subject struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// Lister enumerates the listed activities of a subject.
type Lister interface {
	List(subject string) []*activity.Activity
}

// Entry is one link of the sidebar.
type Entry struct {
	Label    string
	Route    string
	Href     string
	Leaf     bool
	Current  bool
	Children []Entry
}

// Group is the sidebar section of one subject.
type Group struct {
	Subject    Subject
	Outline    []Entry
	Activities []Entry
	Open       bool // the current route belongs to this subject
}

// Build returns the sidebar groups in the order of subjects. Subjects with
// neither a curriculum nor listed activities are left out.
func Build(subjects []Subject, acts Lister, set *curriculum.Set, current route.Route) []Group {
	groups := make([]Group, 0, len(subjects))
	for _, s := range subjects {
		g := Group{
			Subject: s,
			Outline: outline(s.ID, set.Tree(s.ID), current),
			Open:    !current.IsHome() && current.Subject == s.ID,
		}
		if acts != nil {
			for _, a := range acts.List(s.ID) {
				r := route.Activity(a.Subject, a.Slug)
				g.Activities = append(g.Activities, Entry{
					Label:   a.Meta.Title,
					Route:   r.String(),
					Href:    page.Href(r.String()),
					Leaf:    true,
					Current: current == r,
				})
			}
		}
		if len(g.Outline) == 0 && len(g.Activities) == 0 {
			continue
		}
		groups = append(groups, g)
	}
	return groups
}

func outline(subject string, nodes []*curriculum.Node, current route.Route) []Entry {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]Entry, 0, len(nodes))
	for _, n := range nodes {
		r := route.Leaf(subject, n.Key)
		out = append(out, Entry{
			Label:    n.Label,
			Route:    r.String(),
			Href:     page.Href(r.String()),
			Leaf:     n.IsLeaf(),
			Current:  current == r,
			Children: outline(subject, n.Children, current),
		})
	}
	return out
}
