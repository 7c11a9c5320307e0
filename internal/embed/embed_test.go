package embed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYouTubeEmbed(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "watch with start",
			in:   "https://www.youtube.com/watch?v=InAIZ3tP_Mk&start=535",
			want: "https://www.youtube.com/embed/InAIZ3tP_Mk?start=535",
		},
		{
			name: "short link with seconds suffix",
			in:   "https://youtu.be/InAIZ3tP_Mk?t=535s",
			want: "https://www.youtube.com/embed/InAIZ3tP_Mk?start=535",
		},
		{
			name: "clock style offset",
			in:   "https://youtu.be/InAIZ3tP_Mk?t=1h2m3s",
			want: "https://www.youtube.com/embed/InAIZ3tP_Mk?start=3723",
		},
		{
			name: "fragment offset",
			in:   "https://www.youtube.com/watch?v=InAIZ3tP_Mk#t=8m55s",
			want: "https://www.youtube.com/embed/InAIZ3tP_Mk?start=535",
		},
		{
			name: "shorts",
			in:   "https://youtube.com/shorts/abcDEF12345",
			want: "https://www.youtube.com/embed/abcDEF12345",
		},
		{
			name: "live",
			in:   "https://www.youtube.com/live/abcDEF12345?feature=share",
			want: "https://www.youtube.com/embed/abcDEF12345",
		},
		{
			name: "mobile host without scheme",
			in:   "m.youtube.com/watch?v=abcDEF12345",
			want: "https://www.youtube.com/embed/abcDEF12345",
		},
		{
			name: "playlist",
			in:   "https://www.youtube.com/playlist?list=PLx0sYbCqOb8TBPRdmBHs5Iftvv9TPboYG",
			want: "https://www.youtube.com/embed/videoseries?list=PLx0sYbCqOb8TBPRdmBHs5Iftvv9TPboYG",
		},
		{
			name: "video inside playlist",
			in:   "https://www.youtube.com/watch?v=abcDEF12345&list=PLabc&index=3",
			want: "https://www.youtube.com/embed/abcDEF12345?list=PLabc",
		},
		{
			name: "nocookie embed",
			in:   "https://www.youtube-nocookie.com/embed/abcDEF12345?start=10",
			want: "https://www.youtube.com/embed/abcDEF12345?start=10",
		},
		{
			name: "already embedded",
			in:   "https://www.youtube.com/embed/abcDEF12345?start=10",
			want: "https://www.youtube.com/embed/abcDEF12345?start=10",
		},
		{
			name: "videoseries",
			in:   "https://www.youtube.com/embed/videoseries?list=PLabc",
			want: "https://www.youtube.com/embed/videoseries?list=PLabc",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := YouTubeEmbed(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			again, err := YouTubeEmbed(got)
			require.NoError(t, err)
			assert.Equal(t, got, again, "normalization must be idempotent")
		})
	}
}

func TestYouTubeEmbed_KeepsIDAndOffset(t *testing.T) {
	got, err := YouTubeEmbed("https://www.youtube.com/watch?v=InAIZ3tP_Mk&start=535")
	require.NoError(t, err)
	assert.Contains(t, got, "/embed/InAIZ3tP_Mk")
	assert.Contains(t, got, "start=535")
}

func TestYouTubeEmbed_Rejects(t *testing.T) {
	for _, in := range []string{
		"",
		"https://vimeo.com/12345",
		"https://www.youtube.com/watch",
		"https://www.youtube.com/channel/UC123",
		"https://youtu.be/",
		"https://www.youtube.com/watch?v=bad id",
		"https://youtu.be/abcDEF12345?t=soon",
	} {
		_, err := YouTubeEmbed(in)
		assert.ErrorIs(t, err, ErrUnsupportedURL, in)
	}
}

func TestParseOffset(t *testing.T) {
	testCases := map[string]int{
		"0":      0,
		"535":    535,
		"535s":   535,
		"2m":     120,
		"1h":     3600,
		"1h2m3s": 3723,
		"1H2M3S": 3723,
		"48h":    MaxOffset,
	}
	for in, want := range testCases {
		got, err := ParseOffset(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "abc", "1x", "-5"} {
		_, err := ParseOffset(in)
		assert.Error(t, err, in)
	}
}

func TestParseOffset_RejectsHugeValues(t *testing.T) {
	for _, in := range []string{"9999999999999h", "9999999999999m", "99999999999999999999", "48h1s", "172801"} {
		_, err := ParseOffset(in)
		assert.ErrorContains(t, err, "exceeds", in)
	}

	_, err := YouTubeEmbed("https://youtu.be/InAIZ3tP_Mk?t=9999999999999h")
	assert.ErrorIs(t, err, ErrUnsupportedURL)
}

func TestSheetCSV(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "edit with gid fragment",
			in:   "https://docs.google.com/spreadsheets/d/ABC/edit#gid=42",
			want: "https://docs.google.com/spreadsheets/d/ABC/export?format=csv&gid=42",
		},
		{
			name: "edit with gid query",
			in:   "https://docs.google.com/spreadsheets/d/ABC/edit?usp=sharing&gid=7",
			want: "https://docs.google.com/spreadsheets/d/ABC/export?format=csv&gid=7",
		},
		{
			name: "edit without gid",
			in:   "https://docs.google.com/spreadsheets/d/ABC/edit?usp=sharing",
			want: "https://docs.google.com/spreadsheets/d/ABC/export?format=csv&gid=0",
		},
		{
			name: "named sheet",
			in:   "https://docs.google.com/spreadsheets/d/ABC/gviz/tq?sheet=표본 1",
			want: "https://docs.google.com/spreadsheets/d/ABC/gviz/tq?tqx=out:csv&sheet=%ED%91%9C%EB%B3%B8+1",
		},
		{
			name: "published",
			in:   "https://docs.google.com/spreadsheets/d/e/2PACX-abc/pubhtml?gid=5&single=true",
			want: "https://docs.google.com/spreadsheets/d/e/2PACX-abc/pub?gid=5&output=csv",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := SheetCSV(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, SheetCSV(got), "normalization must be idempotent")
		})
	}
}

func TestSheetCSV_PassesThrough(t *testing.T) {
	for _, in := range []string{
		"https://docs.google.com/spreadsheets/d/ABC/export?format=csv&gid=42",
		"https://docs.google.com/spreadsheets/d/ABC/gviz/tq?tqx=out:csv&sheet=data",
		"https://docs.google.com/spreadsheets/d/e/2PACX-abc/pub?output=csv",
		"https://example.com/data.csv",
		"https://docs.google.com/document/d/ABC/edit",
		"not a url at all",
	} {
		assert.Equal(t, in, SheetCSV(in))
	}
}

func TestSheetPreview(t *testing.T) {
	assert.Equal(t,
		"https://docs.google.com/spreadsheets/d/ABC/preview#gid=42",
		SheetPreview("https://docs.google.com/spreadsheets/d/ABC/edit#gid=42"),
	)
	assert.Equal(t,
		"https://docs.google.com/spreadsheets/d/ABC/preview",
		SheetPreview("https://docs.google.com/spreadsheets/d/ABC/edit?usp=sharing"),
	)
	published := "https://docs.google.com/spreadsheets/d/e/2PACX-abc/pubhtml"
	assert.Equal(t, published, SheetPreview(published))
	assert.Equal(t, "https://example.com/x", SheetPreview("https://example.com/x"))
}

func TestClampHeight(t *testing.T) {
	ptr := func(n int) *int { return &n }

	assert.Equal(t, 800, ClampHeight(nil, DefaultHeight))
	assert.Equal(t, 450, ClampHeight(nil, DefaultVideoHeight))
	assert.Equal(t, 200, ClampHeight(ptr(-50), DefaultHeight))
	assert.Equal(t, 200, ClampHeight(ptr(199), DefaultHeight))
	assert.Equal(t, 200, ClampHeight(ptr(200), DefaultHeight))
	assert.Equal(t, 2000, ClampHeight(ptr(2000), DefaultHeight))
	assert.Equal(t, 2000, ClampHeight(ptr(1_000_000), DefaultHeight))
	assert.Equal(t, 640, ClampHeight(ptr(640), DefaultHeight))
}
