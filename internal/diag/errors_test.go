package diag

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadError(t *testing.T) {
	testCases := []struct {
		name     string
		err      *LoadError
		expected string
	}{
		{
			name:     "manifest",
			err:      &LoadError{Source: "a/b.hcl", Subject: "probability", Msg: "invalid manifest"},
			expected: "a/b.hcl: invalid manifest",
		},
		{
			name:     "curriculum item",
			err:      &LoadError{Source: "c.hcl", Subject: "probability", Key: "1-1", Item: 2, Msg: "invalid pdf item", Err: errors.New("src is required")},
			expected: "c.hcl: probability#1-1 item 2: invalid pdf item: src is required",
		},
		{
			name:     "curriculum node",
			err:      &LoadError{Subject: "calculus", Key: "1", Msg: "leaf node has no items"},
			expected: "calculus#1: leaf node has no items",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestLookupError(t *testing.T) {
	err := NotFound(KindActivity, "probability", "nope")
	assert.Equal(t, `activity "nope" not found in subject "probability"`, err.Error())
	assert.ErrorIs(t, err, ErrNotFound)

	var target *LookupError
	wrapped := errors.Join(errors.New("other"), err)
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, KindActivity, target.Kind)

	route := &LookupError{Kind: KindRoute, Ident: "a/b/c", Err: ErrInvalidRoute}
	assert.Equal(t, `route "a/b/c": invalid route`, route.Error())
}

func TestRenderError_Short(t *testing.T) {
	err := &RenderError{Subject: "probability", Slug: "boom", Panic: true, Err: errors.New("division by zero\ngoroutine 1 [running]")}
	assert.Equal(t, "division by zero", err.Short())
	assert.Contains(t, err.Error(), "panicked")

	long := &RenderError{Err: errors.New(strings.Repeat("가", shortLimit+10))}
	assert.Equal(t, shortLimit+1, len([]rune(long.Short())))

	assert.Empty(t, (&RenderError{}).Short())
}

func TestFlatten(t *testing.T) {
	a, b, c := errors.New("a"), errors.New("b"), errors.New("c")
	joined := errors.Join(a, errors.Join(b, c))
	assert.Equal(t, []error{a, b, c}, Flatten(joined))
	assert.Equal(t, []error{a}, Flatten(a))
	assert.Nil(t, Flatten(nil))
}
