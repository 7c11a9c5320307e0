package curriculum

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/mathlab/internal/ctxlog"
	"github.com/vk/mathlab/internal/diag"
	"github.com/vk/mathlab/internal/fsutil"
)

// filePattern selects one curriculum file per subject.
const filePattern = "*.hcl"

var nodeHeader = hcl.BlockHeaderSchema{Type: "node", LabelNames: []string{"key"}}

var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{nodeHeader},
}

var nodeSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "label", Required: true},
	},
	Blocks: []hcl.BlockHeaderSchema{
		nodeHeader,
		{Type: string(KindCanva)},
		{Type: string(KindPdf)},
		{Type: string(KindGSheet)},
		{Type: string(KindYouTube)},
		{Type: string(KindIframe)},
		{Type: string(KindImage)},
		{Type: string(KindActivity)},
	},
}

// Load parses every "<subject>.hcl" file in dir and checks the structural
// rules of each tree: key grammar and uniqueness, the key hierarchy, leaves
// versus internal nodes and the fields of every item. Activity references
// are checked separately by Validate. A missing dir yields an empty set.
func Load(ctx context.Context, dir string) (*Set, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading curriculum files...", "path", dir)

	files, err := fsutil.FindFiles(dir, filePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list curriculum files in %s: %w", dir, err)
	}

	set := NewSet()
	parser := hclparse.NewParser()
	var errs []error
	for _, rel := range files {
		subject := strings.TrimSuffix(rel, path.Ext(rel))
		src := filepath.Join(dir, rel)

		t, err := parseTree(parser, subject, src)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		set.trees[subject] = t
		logger.Debug("Curriculum loaded.", "subject", subject, "nodes", len(t.byKey))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	logger.Info("Curriculum loaded successfully.", "subjects", len(set.trees))
	return set, nil
}

func parseTree(parser *hclparse.Parser, subject, src string) (*tree, error) {
	file, diags := parser.ParseHCLFile(src)
	if diags.HasErrors() {
		return nil, &diag.LoadError{Source: src, Subject: subject, Msg: "invalid curriculum file", Err: diags}
	}
	content, diags := file.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, &diag.LoadError{Source: src, Subject: subject, Msg: "invalid curriculum file", Err: diags}
	}

	b := &builder{
		subject: subject,
		source:  src,
		t: &tree{
			subject: subject,
			source:  src,
			byKey:   make(map[string]*Node),
		},
	}
	for _, block := range content.Blocks {
		if n := b.node(block, ""); n != nil {
			b.t.roots = append(b.t.roots, n)
		}
	}
	if len(b.t.roots) == 0 && len(b.errs) == 0 {
		b.errs = append(b.errs, &diag.LoadError{Source: src, Subject: subject, Msg: "curriculum declares no nodes"})
	}
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	return b.t, nil
}

// builder turns node blocks into a tree, collecting every problem found.
type builder struct {
	subject string
	source  string
	t       *tree
	errs    []error
}

func (b *builder) fail(rng hcl.Range, key string, item int, msg string, err error) {
	b.errs = append(b.errs, &diag.LoadError{
		Source:  rangeString(b.source, rng),
		Subject: b.subject,
		Key:     key,
		Item:    item,
		Msg:     msg,
		Err:     err,
	})
}

func (b *builder) node(block *hcl.Block, parent string) *Node {
	key := block.Labels[0]
	n := &Node{Key: key, Range: block.DefRange}

	switch {
	case !keyPattern.MatchString(key):
		b.fail(block.LabelRanges[0], key, 0, "invalid node key", nil)
	case parent != "" && !checkChildKey(parent, key):
		b.fail(block.LabelRanges[0], key, 0, fmt.Sprintf("key must extend parent key %q by one segment", parent), nil)
	}
	if prev, dup := b.t.byKey[key]; dup {
		b.fail(block.LabelRanges[0], key, 0, "duplicate node key, first declared at "+rangeString(b.source, prev.Range), nil)
	} else {
		b.t.byKey[key] = n
	}

	content, diags := block.Body.Content(nodeSchema)
	if diags.HasErrors() {
		b.fail(block.DefRange, key, 0, "invalid node", diags)
		return n
	}
	if diags := gohcl.DecodeExpression(content.Attributes["label"].Expr, nil, &n.Label); diags.HasErrors() {
		b.fail(block.DefRange, key, 0, "invalid node label", diags)
	}

	for _, child := range content.Blocks {
		if child.Type == nodeHeader.Type {
			n.Children = append(n.Children, b.node(child, key))
			continue
		}
		idx := len(n.Items) + 1
		target := itemFactories[Kind(child.Type)]()
		if diags := gohcl.DecodeBody(child.Body, nil, target); diags.HasErrors() {
			b.fail(child.DefRange, key, idx, fmt.Sprintf("invalid %s item", child.Type), diags)
			n.Items = append(n.Items, deref(target))
			n.itemRanges = append(n.itemRanges, child.DefRange)
			continue
		}
		if ref, ok := target.(*ActivityRef); ok && ref.Subject == "" {
			ref.Subject = b.subject
		}
		if err := validateItem(target); err != nil {
			b.fail(child.DefRange, key, idx, fmt.Sprintf("invalid %s item", child.Type), err)
		}
		n.Items = append(n.Items, deref(target))
		n.itemRanges = append(n.itemRanges, child.DefRange)
	}

	switch {
	case len(n.Children) > 0 && len(n.Items) > 0:
		b.fail(block.DefRange, key, 0, "node mixes child nodes and items", nil)
	case len(n.Children) == 0 && len(n.Items) == 0:
		b.fail(block.DefRange, key, 0, "leaf node has no items", nil)
	}
	return n
}

// rangeString renders "file:line,col" for the start of rng.
func rangeString(source string, rng hcl.Range) string {
	if rng.Start.Line == 0 {
		return source
	}
	return fmt.Sprintf("%s:%d,%d", source, rng.Start.Line, rng.Start.Column)
}
