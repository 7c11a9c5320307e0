package curriculum

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/mathlab/internal/activity"
	"github.com/vk/mathlab/internal/diag"
	"github.com/vk/mathlab/internal/testutil"
)

const binomialLeaf = `
node "1" {
  label = "경우의 수"

  node "1-1" {
    label = "순열과 조합"

    node "1-1-1" {
      label = "원순열"
      activity {
        slug = "mini/circular_perm_anchor_p5"
      }
    }
  }

  node "1-2" {
    label = "이항정리"

    node "1-2-1" {
      label = "이항정리와 파스칼의 삼각형"
      canva {
        title = "이항정리"
        src   = "https://www.canva.com/design/U1/view?embed"
      }
      canva {
        title = "파스칼의 삼각형"
        src   = "https://www.canva.com/design/U2/view?embed"
      }
      gsheet {
        title  = "파스칼의 삼각형 시트"
        src    = "https://docs.google.com/spreadsheets/d/U3/edit#gid=0"
        height = 600
      }
    }
  }
}

node "2" {
  label = "확률"

  node "2.1" {
    label = "확률의 뜻"
    youtube {
      title = "확률 소개"
      src   = "https://youtu.be/InAIZ3tP_Mk?t=535"
    }
    activity {
      title   = "몬티 홀"
      subject = "probability"
      slug    = "monty_hall_p5"
    }
    image {
      title = "주사위"
      srcs  = ["/static/d1.png", "/static/d2.png"]
      cols  = 2
    }
  }
}
`

func load(t *testing.T, files map[string]string) (*Set, error) {
	t.Helper()
	ctx, _ := testutil.NewContext(t)
	root := testutil.WriteFiles(t, files)
	return Load(ctx, filepath.Join(root, "curriculum"))
}

type resolverFunc func(subject, slug string) (*activity.Activity, error)

func (f resolverFunc) Get(subject, slug string) (*activity.Activity, error) { return f(subject, slug) }

func knownActivities(ids ...string) resolverFunc {
	known := map[string]bool{}
	for _, id := range ids {
		known[id] = true
	}
	return func(subject, slug string) (*activity.Activity, error) {
		if !known[subject+"/"+slug] {
			return nil, diag.NotFound(diag.KindActivity, subject, slug)
		}
		return &activity.Activity{Subject: subject, Slug: slug}, nil
	}
}

func TestLoad_TreeShapeAndItemOrder(t *testing.T) {
	set, err := load(t, map[string]string{"curriculum/probability.hcl": binomialLeaf})
	require.NoError(t, err)

	roots := set.Tree("probability")
	require.Len(t, roots, 2)
	assert.Equal(t, "1", roots[0].Key)
	assert.Equal(t, "경우의 수", roots[0].Label)
	assert.False(t, roots[0].IsLeaf())

	leaf, err := set.FindByKey("probability", "1-2-1")
	require.NoError(t, err)
	require.True(t, leaf.IsLeaf())
	require.Len(t, leaf.Items, 3)

	assert.Equal(t, Canva{Title: "이항정리", Src: "https://www.canva.com/design/U1/view?embed"}, leaf.Items[0])
	assert.Equal(t, Canva{Title: "파스칼의 삼각형", Src: "https://www.canva.com/design/U2/view?embed"}, leaf.Items[1])
	sheet, ok := leaf.Items[2].(GSheet)
	require.True(t, ok)
	require.NotNil(t, sheet.Height)
	assert.Equal(t, 600, *sheet.Height)
}

func TestLoad_MixedItemKindsKeepSourceOrder(t *testing.T) {
	set, err := load(t, map[string]string{"curriculum/probability.hcl": binomialLeaf})
	require.NoError(t, err)

	leaf, err := set.FindByKey("probability", "2.1")
	require.NoError(t, err)

	kinds := make([]Kind, 0, len(leaf.Items))
	for _, it := range leaf.Items {
		kinds = append(kinds, it.Kind())
	}
	assert.Equal(t, []Kind{KindYouTube, KindActivity, KindImage}, kinds)

	img := leaf.Items[2].(Image)
	assert.Equal(t, []string{"/static/d1.png", "/static/d2.png"}, img.Srcs)
	require.NotNil(t, img.Cols)
	assert.Equal(t, 2, *img.Cols)
}

func TestLoad_ActivityRefDefaultsSubject(t *testing.T) {
	set, err := load(t, map[string]string{"curriculum/probability.hcl": binomialLeaf})
	require.NoError(t, err)

	leaf, err := set.FindByKey("probability", "1-1-1")
	require.NoError(t, err)
	ref := leaf.Items[0].(ActivityRef)
	assert.Equal(t, "probability", ref.Subject)
	assert.Equal(t, "mini/circular_perm_anchor_p5", ref.Slug)
	assert.Equal(t, "probability/mini/circular_perm_anchor_p5", ref.Route())
	assert.Empty(t, ref.ItemTitle())
}

func TestWalk_PreOrder(t *testing.T) {
	set, err := load(t, map[string]string{"curriculum/probability.hcl": binomialLeaf})
	require.NoError(t, err)

	var keys []string
	var depths []int
	require.NoError(t, set.Walk("probability", func(n *Node, depth int) error {
		keys = append(keys, n.Key)
		depths = append(depths, depth)
		return nil
	}))
	assert.Equal(t, []string{"1", "1-1", "1-1-1", "1-2", "1-2-1", "2", "2.1"}, keys)
	assert.Equal(t, []int{0, 1, 2, 1, 2, 0, 1}, depths)
}

func TestWalk_SkipChildrenAndStop(t *testing.T) {
	set, err := load(t, map[string]string{"curriculum/probability.hcl": binomialLeaf})
	require.NoError(t, err)

	var keys []string
	require.NoError(t, set.Walk("probability", func(n *Node, _ int) error {
		keys = append(keys, n.Key)
		if n.Key == "1" {
			return SkipChildren
		}
		return nil
	}))
	assert.Equal(t, []string{"1", "2", "2.1"}, keys)

	stop := errors.New("stop")
	keys = nil
	err = set.Walk("probability", func(n *Node, _ int) error {
		keys = append(keys, n.Key)
		if n.Key == "1-1" {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"1", "1-1"}, keys)
}

func TestLeaves(t *testing.T) {
	set, err := load(t, map[string]string{"curriculum/probability.hcl": binomialLeaf})
	require.NoError(t, err)

	var keys []string
	for _, n := range set.Leaves("probability") {
		keys = append(keys, n.Key)
		assert.NotEmpty(t, n.Items)
		assert.Empty(t, n.Children)
	}
	assert.Equal(t, []string{"1-1-1", "1-2-1", "2.1"}, keys)
}

func TestFindByKey_NotFound(t *testing.T) {
	set, err := load(t, map[string]string{"curriculum/probability.hcl": binomialLeaf})
	require.NoError(t, err)

	for _, tc := range []struct{ subject, key string }{
		{"probability", "9-9"},
		{"geometry", "1"},
	} {
		_, err := set.FindByKey(tc.subject, tc.key)
		var le *diag.LookupError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, diag.KindCurriculum, le.Kind)
		assert.Equal(t, tc.key, le.Ident)
		assert.ErrorIs(t, err, diag.ErrNotFound)
	}
}

func TestValidate_ResolvesActivityRefs(t *testing.T) {
	set, err := load(t, map[string]string{"curriculum/probability.hcl": binomialLeaf})
	require.NoError(t, err)

	err = set.Validate(knownActivities("probability/mini/circular_perm_anchor_p5", "probability/monty_hall_p5"))
	assert.NoError(t, err)
}

func TestValidate_UnresolvedActivityRef(t *testing.T) {
	set, err := load(t, map[string]string{"curriculum/probability.hcl": `
node "3" {
  label = "통계"
  node "3-1" {
    label = "모평균의 추정"
    canva {
      title = "신뢰구간"
      src   = "https://www.canva.com/design/U9/view?embed"
    }
    activity {
      subject = "probability"
      slug    = "does_not_exist"
    }
  }
}
`})
	require.NoError(t, err)

	err = set.Validate(knownActivities())
	require.Error(t, err)

	var le *diag.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "probability", le.Subject)
	assert.Equal(t, "3-1", le.Key)
	assert.Equal(t, 2, le.Item)
	assert.Contains(t, err.Error(), "does_not_exist")
	assert.Contains(t, err.Error(), "3-1")
	assert.ErrorIs(t, err, diag.ErrNotFound)
}

func TestLoad_SyntaxErrorHasLocation(t *testing.T) {
	// Two arguments on one line: the HCL rendition of a missing separator.
	_, err := load(t, map[string]string{"curriculum/calculus.hcl": `node "1" {
  label = "수열의 극한"
  node "1-1" { label = "급수" node "1-2" { label = "x" } }
}
`})
	require.Error(t, err)

	var le *diag.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "calculus", le.Subject)
	assert.Contains(t, err.Error(), "calculus.hcl:3,")
}

func TestLoad_StructuralErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		key     string
		item    int
		errText string
	}{
		{
			name:    "mixed node",
			key:     "1",
			errText: "mixes child nodes and items",
			content: `
node "1" {
  label = "a"
  iframe {
    title = "x"
    src   = "https://example.com"
  }
  node "1-1" {
    label = "b"
    iframe {
      title = "y"
      src   = "https://example.com"
    }
  }
}`,
		},
		{
			name:    "empty leaf",
			key:     "1",
			errText: "leaf node has no items",
			content: `
node "1" {
  label = "a"
}`,
		},
		{
			name:    "duplicate key",
			key:     "1-1",
			errText: "duplicate node key",
			content: `
node "1" {
  label = "a"
  node "1-1" {
    label = "b"
    iframe {
      title = "x"
      src   = "https://example.com"
    }
  }
  node "1-1" {
    label = "c"
    iframe {
      title = "y"
      src   = "https://example.com"
    }
  }
}`,
		},
		{
			name:    "child key not extending parent",
			key:     "2-1",
			errText: "must extend parent key",
			content: `
node "1" {
  label = "a"
  node "2-1" {
    label = "b"
    iframe {
      title = "x"
      src   = "https://example.com"
    }
  }
}`,
		},
		{
			name:    "child key skipping a level",
			key:     "1-1-1",
			errText: "must extend parent key",
			content: `
node "1" {
  label = "a"
  node "1-1-1" {
    label = "b"
    iframe {
      title = "x"
      src   = "https://example.com"
    }
  }
}`,
		},
		{
			name:    "invalid key",
			key:     "1 2",
			errText: "invalid node key",
			content: `
node "1 2" {
  label = "a"
  iframe {
    title = "x"
    src   = "https://example.com"
  }
}`,
		},
		{
			name:    "missing label",
			key:     "1",
			errText: "label",
			content: `
node "1" {
  iframe {
    title = "x"
    src   = "https://example.com"
  }
}`,
		},
		{
			name:    "item missing src",
			key:     "1",
			item:    2,
			errText: "invalid pdf item",
			content: `
node "1" {
  label = "a"
  iframe {
    title = "x"
    src   = "https://example.com"
  }
  pdf {
    title = "no source"
  }
}`,
		},
		{
			name:    "item with relative url",
			key:     "1",
			item:    1,
			errText: "src must be an absolute http(s) URL",
			content: `
node "1" {
  label = "a"
  canva {
    title = "x"
    src   = "slides/deck"
  }
}`,
		},
		{
			name:    "youtube item with a non-YouTube src",
			key:     "1",
			item:    2,
			errText: "src must be a YouTube video, short, playlist or embed URL",
			content: `
node "1" {
  label = "a"
  youtube {
    title = "ok"
    src   = "https://youtu.be/InAIZ3tP_Mk"
  }
  youtube {
    title = "vimeo"
    src   = "https://vimeo.com/76979871"
  }
}`,
		},
		{
			name:    "youtube item with a channel url",
			key:     "1",
			item:    1,
			errText: "src must be a YouTube video, short, playlist or embed URL",
			content: `
node "1" {
  label = "a"
  youtube {
    title = "channel"
    src   = "https://www.youtube.com/channel/UC123"
  }
}`,
		},
		{
			name:    "blank item title",
			key:     "1",
			item:    1,
			errText: "title must not be blank",
			content: `
node "1" {
  label = "a"
  youtube {
    title = "  "
    src   = "https://youtu.be/abc"
  }
}`,
		},
		{
			name:    "image with src and srcs",
			key:     "1",
			item:    1,
			errText: "exactly one of src and srcs",
			content: `
node "1" {
  label = "a"
  image {
    title = "x"
    src   = "/a.png"
    srcs  = ["/b.png"]
  }
}`,
		},
		{
			name:    "image with neither src nor srcs",
			key:     "1",
			item:    1,
			errText: "exactly one of src and srcs",
			content: `
node "1" {
  label = "a"
  image {
    title = "x"
  }
}`,
		},
		{
			name:    "unknown item attribute",
			key:     "1",
			item:    1,
			errText: "Unsupported argument",
			content: `
node "1" {
  label = "a"
  iframe {
    title  = "x"
    src    = "https://example.com"
    heigth = 300
  }
}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(t, map[string]string{"curriculum/probability.hcl": tc.content})
			require.Error(t, err)

			var le *diag.LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, "probability", le.Subject)
			assert.Equal(t, tc.key, le.Key)
			assert.Equal(t, tc.item, le.Item)
			assert.Contains(t, err.Error(), tc.errText)
		})
	}
}

func TestLoad_ReportsEveryProblem(t *testing.T) {
	_, err := load(t, map[string]string{
		"curriculum/probability.hcl": `
node "1" {
  label = "a"
}
node "2" {
  label = "b"
}`,
		"curriculum/calculus.hcl": `node "1" {`,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probability#1")
	assert.Contains(t, err.Error(), "probability#2")
	assert.Contains(t, err.Error(), "calculus.hcl")
}

func TestLoad_MissingDirIsEmpty(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	set, err := Load(ctx, filepath.Join(t.TempDir(), "curriculum"))
	require.NoError(t, err)
	assert.Empty(t, set.Subjects())
	assert.Nil(t, set.Tree("probability"))
}

func TestCheckChildKey(t *testing.T) {
	testCases := []struct {
		parent, child string
		want          bool
	}{
		{"1", "1-2", true},
		{"1-2", "1-2-1", true},
		{"2", "2.1", true},
		{"1", "10", false},
		{"1", "1-", false},
		{"1", "1-2-3", false},
		{"1", "2-1", false},
		{"1", "1_2", false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, checkChildKey(tc.parent, tc.child), "%s -> %s", tc.parent, tc.child)
	}
}
