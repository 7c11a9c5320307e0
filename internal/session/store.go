// Package session provides the host-provided keyed state that activities and
// the scroll-preservation protocol use across rerenders.
//
// # Purpose
//
// Every widget change rerenders the whole view. Anything an activity wants to
// remember between two renders (an accumulated simulation, a one-shot scroll
// anchor) lives here, keyed by the viewer's session and partitioned by route.
//
// # Characteristics
//
//   - **Ephemeral:** nothing is persisted; sessions expire after an idle TTL.
//   - **Thread-Safe:** sessions and values live in sync.Maps, so concurrent
//     requests from different viewers never contend on a global lock.
//   - **Partitioned:** State.Scope gives each route its own key space, so
//     navigating to another view never sees the previous view's values.
package session

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session ID.
const CookieName = "mathlab_session"

// DefaultTTL is the idle time after which a session is dropped.
const DefaultTTL = 2 * time.Hour

// Store is an in-memory map from session ID to State.
type Store struct {
	sessions sync.Map // Key: session ID string, Value: *State
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates an empty store. A non-positive ttl selects DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{ttl: ttl, now: time.Now}
}

// Get returns the state for id, creating it on first use.
func (s *Store) Get(id string) *State {
	fresh := &State{}
	v, _ := s.sessions.LoadOrStore(id, fresh)
	st := v.(*State)
	st.touch(s.now())
	return st
}

// Lookup returns the state for id without creating it.
func (s *Store) Lookup(id string) (*State, bool) {
	v, ok := s.sessions.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*State), true
}

// FromRequest resolves the session of the request, issuing a new session
// cookie on w when the request carries none.
func (s *Store) FromRequest(w http.ResponseWriter, r *http.Request) (string, *State) {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		if _, perr := uuid.Parse(c.Value); perr == nil {
			return c.Value, s.Get(c.Value)
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, s.Get(id)
}

// Sweep drops every session idle for longer than the store's TTL and returns
// how many were removed.
func (s *Store) Sweep(now time.Time) int {
	removed := 0
	cutoff := now.Add(-s.ttl).UnixNano()
	s.sessions.Range(func(k, v any) bool {
		if v.(*State).lastSeen.Load() < cutoff {
			s.sessions.Delete(k)
			removed++
		}
		return true
	})
	return removed
}

// TTL returns the idle time after which a session is dropped.
func (s *Store) TTL() time.Duration { return s.ttl }

// Len counts live sessions.
func (s *Store) Len() int {
	n := 0
	s.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// State holds one viewer's keyed values.
type State struct {
	values   sync.Map // Key: scoped key string, Value: any
	lastSeen atomic.Int64
}

func (st *State) touch(t time.Time) {
	st.lastSeen.Store(t.UnixNano())
}

// Scope returns a view of the state whose keys are prefixed with prefix.
func (st *State) Scope(prefix string) *Scoped {
	return &Scoped{state: st, prefix: prefix + "\x00"}
}

// Scoped is a route-partitioned view over a State. A nil *Scoped behaves as
// an always-empty store that drops writes.
type Scoped struct {
	state  *State
	prefix string
}

// Scope returns a nested view whose keys are further prefixed with prefix.
func (s *Scoped) Scope(prefix string) *Scoped {
	if s == nil {
		return nil
	}
	return &Scoped{state: s.state, prefix: s.prefix + prefix + "\x00"}
}

// Get returns the value stored under key.
func (s *Scoped) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	return s.state.values.Load(s.prefix + key)
}

// Set stores v under key.
func (s *Scoped) Set(key string, v any) {
	if s == nil {
		return
	}
	s.state.values.Store(s.prefix+key, v)
}

// Delete removes key.
func (s *Scoped) Delete(key string) {
	if s == nil {
		return
	}
	s.state.values.Delete(s.prefix + key)
}

// Pop removes key and returns the value it held.
func (s *Scoped) Pop(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	return s.state.values.LoadAndDelete(s.prefix + key)
}
