package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoped_IsolatesRoutes(t *testing.T) {
	st := NewStore(0).Get("abc")

	a := st.Scope("probability/monty_hall_p5")
	b := st.Scope("probability/buffon_needle_p5")

	a.Set("wins", 3)
	v, ok := a.Get("wins")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = b.Get("wins")
	assert.False(t, ok, "a different route must not see the value")
}

func TestScoped_Pop(t *testing.T) {
	sc := NewStore(0).Get("abc").Scope("home")
	sc.Set("anchor", "results")

	v, ok := sc.Pop("anchor")
	require.True(t, ok)
	assert.Equal(t, "results", v)

	_, ok = sc.Pop("anchor")
	assert.False(t, ok, "pop must consume the value")
}

func TestScoped_NilIsEmpty(t *testing.T) {
	var sc *Scoped
	sc.Set("k", 1)
	_, ok := sc.Get("k")
	assert.False(t, ok)
	_, ok = sc.Pop("k")
	assert.False(t, ok)
}

func TestStore_Sweep(t *testing.T) {
	s := NewStore(time.Minute)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return base }
	s.Get("old")
	s.now = func() time.Time { return base.Add(50 * time.Second) }
	s.Get("new")

	removed := s.Sweep(base.Add(90 * time.Second))
	assert.Equal(t, 1, removed)

	_, ok := s.Lookup("old")
	assert.False(t, ok)
	_, ok = s.Lookup("new")
	assert.True(t, ok)
}

func TestStore_FromRequest(t *testing.T) {
	s := NewStore(0)

	t.Run("issues a cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		id, st := s.FromRequest(rec, req)
		require.NotEmpty(t, id)
		require.NotNil(t, st)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, CookieName, cookies[0].Name)
		assert.Equal(t, id, cookies[0].Value)
	})

	t.Run("reuses an existing session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		id, st := s.FromRequest(rec, req)
		st.Scope("x").Set("k", "v")

		rec2 := httptest.NewRecorder()
		req2 := httptest.NewRequest(http.MethodGet, "/", nil)
		req2.AddCookie(&http.Cookie{Name: CookieName, Value: id})
		id2, st2 := s.FromRequest(rec2, req2)

		assert.Equal(t, id, id2)
		assert.Empty(t, rec2.Result().Cookies())
		v, ok := st2.Scope("x").Get("k")
		require.True(t, ok)
		assert.Equal(t, "v", v)
	})

	t.Run("replaces a malformed cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-uuid"})

		id, _ := s.FromRequest(rec, req)
		assert.NotEqual(t, "not-a-uuid", id)
		assert.Len(t, rec.Result().Cookies(), 1)
	})
}
