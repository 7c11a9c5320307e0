// Package diag defines the structured error kinds shared by the loader, the
// router and the renderer.
//
// There are three of them:
//
//   - LoadError: fatal at startup. Malformed manifests, slug collisions,
//     curriculum invariant violations and unresolved activity references.
//   - LookupError: non-fatal. A route names an activity or curriculum key
//     that does not exist. The view falls back to the landing page.
//   - RenderError: non-fatal. An activity's render entry failed or panicked.
//     The failure is contained in a diagnostic panel.
package diag

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNotFound marks a lookup that found nothing.
	ErrNotFound = errors.New("not found")
	// ErrNoRenderEntry marks an activity whose manifest names no compiled render entry.
	ErrNoRenderEntry = errors.New("activity has no render entry")
	// ErrSlugCollision marks two manifest files that produce the same slug.
	ErrSlugCollision = errors.New("slug collision")
	// ErrInvalidRoute marks a route string that cannot be parsed.
	ErrInvalidRoute = errors.New("invalid route")
)

// LoadError reports a content problem found while building the registry or
// the curriculum trees.
type LoadError struct {
	Source  string // file the problem was found in
	Subject string
	Key     string // curriculum key, empty for activity manifests
	Item    int    // 1-based item index within a leaf, 0 when not item specific
	Msg     string
	Err     error
}

func (e *LoadError) Error() string {
	var sb strings.Builder
	if e.Source != "" {
		sb.WriteString(e.Source)
		sb.WriteString(": ")
	}
	if e.Key != "" {
		sb.WriteString(e.Subject)
		sb.WriteByte('#')
		sb.WriteString(e.Key)
		if e.Item > 0 {
			fmt.Fprintf(&sb, " item %d", e.Item)
		}
		sb.WriteString(": ")
	}
	sb.WriteString(e.Msg)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *LoadError) Unwrap() error { return e.Err }

// Lookup kinds.
const (
	KindActivity   = "activity"
	KindCurriculum = "curriculum"
	KindRoute      = "route"
)

// LookupError reports an identifier that does not resolve at runtime.
type LookupError struct {
	Kind    string
	Subject string
	Ident   string // slug, curriculum key or raw route
	Err     error
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case KindActivity:
		return fmt.Sprintf("activity %q not found in subject %q", e.Ident, e.Subject)
	case KindCurriculum:
		return fmt.Sprintf("curriculum key %q not found in subject %q", e.Ident, e.Subject)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s %q: %v", e.Kind, e.Ident, e.Err)
		}
		return fmt.Sprintf("%s %q not found", e.Kind, e.Ident)
	}
}

func (e *LookupError) Unwrap() error { return e.Err }

// NotFound builds a LookupError wrapping ErrNotFound.
func NotFound(kind, subject, ident string) *LookupError {
	return &LookupError{Kind: kind, Subject: subject, Ident: ident, Err: ErrNotFound}
}

// RenderError reports a failure inside an activity's render entry.
type RenderError struct {
	Subject string
	Slug    string
	Panic   bool
	Err     error
}

func (e *RenderError) Error() string {
	what := "failed"
	if e.Panic {
		what = "panicked"
	}
	return fmt.Sprintf("activity %s/%s %s: %v", e.Subject, e.Slug, what, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

const shortLimit = 200

// Short returns the first line of the underlying error, capped for display.
func (e *RenderError) Short() string {
	if e.Err == nil {
		return ""
	}
	msg, _, _ := strings.Cut(e.Err.Error(), "\n")
	if utf8.RuneCountInString(msg) > shortLimit {
		r := []rune(msg)
		msg = string(r[:shortLimit]) + "…"
	}
	return msg
}

// Flatten expands joined errors into their leaves, in order.
func Flatten(err error) []error {
	if err == nil {
		return nil
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range j.Unwrap() {
			out = append(out, Flatten(e)...)
		}
		return out
	}
	return []error{err}
}
