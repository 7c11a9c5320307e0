package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/mathlab/internal/diag"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		in   string
		want Route
	}{
		{"", Home()},
		{"home", Home()},
		{"  home ", Home()},
		{"probability/monty_hall_p5", Activity("probability", "monty_hall_p5")},
		{"probability/mini/circular_perm_anchor_p5", Activity("probability", "mini/circular_perm_anchor_p5")},
		{"probability#1-2-1", Leaf("probability", "1-2-1")},
		{"calculus#2.1", Leaf("calculus", "2.1")},
		{"probability#단원1", Leaf("probability", "단원1")},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{
		"probability",
		"Probability/x",
		"/x",
		"probability/",
		"probability//x",
		"probability/../secrets",
		"probability/./x",
		"probability#",
		"probability#1#2",
		"#1-2",
		"prob ability#1",
	} {
		_, err := Parse(in)
		require.Error(t, err, in)
		assert.ErrorIs(t, err, diag.ErrInvalidRoute, in)

		var le *diag.LookupError
		require.ErrorAs(t, err, &le, in)
		assert.Equal(t, diag.KindRoute, le.Kind)
		assert.Equal(t, in, le.Ident)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, r := range []Route{
		Home(),
		Activity("probability", "buffon_needle_p5"),
		Activity("probability", "mini/circular_perm_anchor_p5"),
		Leaf("probability", "1-2-1"),
		Leaf("calculus", "3.2"),
	} {
		got, err := Parse(r.String())
		require.NoError(t, err, r.String())
		assert.Equal(t, r, got)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "home", Home().String())
	assert.Equal(t, "probability/monty_hall_p5", Activity("probability", "monty_hall_p5").String())
	assert.Equal(t, "probability#1-2-1", Leaf("probability", "1-2-1").String())
	assert.Equal(t, "activity", KindActivity.String())
}
