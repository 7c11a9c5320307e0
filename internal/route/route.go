// Package route parses and formats the opaque route strings that select a
// view: "home", "<subject>/<slug>" for an activity and "<subject>#<key>"
// for a curriculum node.
package route

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vk/mathlab/internal/diag"
)

// Kind is the view a route selects.
type Kind int

const (
	KindHome Kind = iota
	KindActivity
	KindLeaf
)

func (k Kind) String() string {
	switch k {
	case KindActivity:
		return "activity"
	case KindLeaf:
		return "leaf"
	default:
		return "home"
	}
}

// HomeName is the canonical form of the landing route.
const HomeName = "home"

// Route is a parsed route.
type Route struct {
	Kind    Kind
	Subject string
	Slug    string // activity routes
	Key     string // curriculum routes
}

var subjectPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Home returns the landing route.
func Home() Route { return Route{Kind: KindHome} }

// Activity returns the route of an activity.
func Activity(subject, slug string) Route {
	return Route{Kind: KindActivity, Subject: subject, Slug: slug}
}

// Leaf returns the route of a curriculum node.
func Leaf(subject, key string) Route {
	return Route{Kind: KindLeaf, Subject: subject, Key: key}
}

// String returns the canonical route string. Parse(r.String()) == r for
// every route Parse accepts.
func (r Route) String() string {
	switch r.Kind {
	case KindActivity:
		return r.Subject + "/" + r.Slug
	case KindLeaf:
		return r.Subject + "#" + r.Key
	default:
		return HomeName
	}
}

// IsHome reports whether r is the landing route.
func (r Route) IsHome() bool { return r.Kind == KindHome }

// Parse parses a route string. The empty string is the landing route.
// Errors wrap diag.ErrInvalidRoute.
func Parse(s string) (Route, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == HomeName {
		return Home(), nil
	}

	if subject, key, ok := strings.Cut(s, "#"); ok {
		if err := checkSubject(subject); err != nil {
			return Route{}, invalid(s, err)
		}
		if key == "" || strings.ContainsAny(key, "#/ ") {
			return Route{}, invalid(s, fmt.Errorf("malformed curriculum key %q", key))
		}
		return Leaf(subject, key), nil
	}

	subject, slug, ok := strings.Cut(s, "/")
	if !ok {
		return Route{}, invalid(s, fmt.Errorf("expected %q, %q or %q", HomeName, "subject/slug", "subject#key"))
	}
	if err := checkSubject(subject); err != nil {
		return Route{}, invalid(s, err)
	}
	for _, seg := range strings.Split(slug, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return Route{}, invalid(s, fmt.Errorf("malformed slug %q", slug))
		}
	}
	return Activity(subject, slug), nil
}

func checkSubject(subject string) error {
	if !subjectPattern.MatchString(subject) {
		return fmt.Errorf("malformed subject %q", subject)
	}
	return nil
}

func invalid(raw string, err error) error {
	return &diag.LookupError{Kind: diag.KindRoute, Ident: raw, Err: fmt.Errorf("%w: %w", diag.ErrInvalidRoute, err)}
}
