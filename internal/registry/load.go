package registry

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/mathlab/internal/activity"
	"github.com/vk/mathlab/internal/ctxlog"
	"github.com/vk/mathlab/internal/diag"
	"github.com/vk/mathlab/internal/fsutil"
	"github.com/vk/mathlab/internal/handlers"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// manifestPattern selects activity manifests in HCL native or JSON syntax.
const manifestPattern = "**/*.{hcl,json}"

// manifestRootSchema expects a single 'activity' block per file.
var manifestRootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "activity"},
	},
}

// activityBodySchema is the schema of the *body* of an 'activity' block.
// Required attributes are checked by hand so the error can name the file.
var activityBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "title"},
		{Name: "description"},
		{Name: "order"},
		{Name: "hidden"},
		{Name: "render"},
	},
}

// Build discovers every subject directory under root and returns the
// finished registry. All load errors of all subjects are reported together.
func Build(ctx context.Context, root string, h *handlers.Handlers) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading activity manifests...", "path", root)

	subjects, err := fsutil.SubDirs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects in %s: %w", root, err)
	}
	if len(subjects) == 0 {
		logger.Warn("No activity subjects found in path", "path", root)
	}

	reg := New(root, h)
	var errs []error
	total := 0
	for _, subject := range subjects {
		acts, err := reg.Discover(ctx, subject)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		total += len(acts)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	logger.Info("Registry loaded successfully.", "subjects", len(subjects), "activities", total)
	return reg, nil
}

// Discover scans the subject's directory recursively and indexes every
// manifest found. It reads metadata only and is idempotent: running it again
// over unchanged files yields the same index.
func (r *Registry) Discover(ctx context.Context, subject string) ([]*activity.Activity, error) {
	logger := ctxlog.FromContext(ctx).With("subject", subject)
	dir := filepath.Join(r.root, subject)

	files, err := fsutil.FindFiles(dir, manifestPattern)
	if err != nil {
		return nil, &diag.LoadError{Source: dir, Subject: subject, Msg: "failed to walk activity directory", Err: err}
	}
	logger.Debug("Found manifest files to load", "count", len(files))

	idx := &subjectIndex{
		subject: subject,
		bySlug:  make(map[string]*activity.Activity),
	}
	parser := hclparse.NewParser()

	var errs []error
	for _, rel := range files {
		src := filepath.Join(dir, filepath.FromSlash(rel))
		slug := slugOf(rel)
		reserved := activity.IsReservedName(rel)

		meta, found, diags := parseManifest(parser, src, reserved)
		if diags.HasErrors() {
			errs = append(errs, &diag.LoadError{Source: src, Subject: subject, Msg: "invalid activity manifest", Err: diags})
			continue
		}
		if !found {
			logger.Debug("Skipping reserved file without an activity block.", "file", src)
			continue
		}

		if prev, dup := idx.bySlug[slug]; dup {
			errs = append(errs, &diag.LoadError{
				Source:  src,
				Subject: subject,
				Msg:     fmt.Sprintf("slug %q is also produced by %s", slug, prev.Source),
				Err:     diag.ErrSlugCollision,
			})
			continue
		}

		a := &activity.Activity{
			Subject:  subject,
			Slug:     slug,
			Meta:     *meta,
			Source:   src,
			Reserved: reserved,
		}
		if fn, ok := r.handlers.Lookup(a.EntryName()); ok {
			a.Render = fn
		} else {
			logger.Warn("Activity has no render entry; it will show a diagnostic when opened.", "slug", slug, "entry", a.EntryName())
		}

		idx.bySlug[slug] = a
		idx.all = append(idx.all, a)
	}

	order, orderFile, err := readOrder(dir)
	if err != nil {
		errs = append(errs, &diag.LoadError{Source: orderFile, Subject: subject, Msg: "invalid ordering manifest", Err: err})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	idx.order = order
	idx.orderFile = orderFile
	idx.listed = idx.buildListing(logger)
	r.subjects[subject] = idx

	logger.Debug("Subject indexed.", "activities", len(idx.all), "listed", len(idx.listed))
	return idx.all, nil
}

// slugOf turns a manifest path relative to the subject root into a slug.
func slugOf(rel string) string {
	rel = normalizeSlug(rel)
	return strings.TrimSuffix(rel, path.Ext(rel))
}

// parseManifest reads one manifest file. found is false for reserved files
// that declare no activity block.
func parseManifest(parser *hclparse.Parser, src string, reserved bool) (*activity.Meta, bool, hcl.Diagnostics) {
	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if strings.HasSuffix(src, ".json") {
		file, diags = parser.ParseJSONFile(src)
	} else {
		file, diags = parser.ParseHCLFile(src)
	}
	if diags.HasErrors() {
		return nil, false, diags
	}

	var content *hcl.BodyContent
	if reserved {
		// Reserved files may hold shared fragments next to (or instead of) an activity.
		content, _, diags = file.Body.PartialContent(manifestRootSchema)
	} else {
		content, diags = file.Body.Content(manifestRootSchema)
	}
	if diags.HasErrors() {
		return nil, false, diags
	}

	switch len(content.Blocks) {
	case 0:
		if reserved {
			return nil, false, nil
		}
		return nil, false, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Missing activity block",
			Detail:   "An activity manifest must declare exactly one \"activity\" block.",
			Subject:  file.Body.MissingItemRange().Ptr(),
		}}
	case 1:
	default:
		return nil, false, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Duplicate activity block",
			Detail:   "An activity manifest must declare exactly one \"activity\" block.",
			Subject:  content.Blocks[1].DefRange.Ptr(),
		}}
	}

	block := content.Blocks[0]
	meta, diags := decodeMeta(block)
	if diags.HasErrors() {
		return nil, false, diags
	}
	return meta, true, nil
}

func decodeMeta(block *hcl.Block) (*activity.Meta, hcl.Diagnostics) {
	body, diags := block.Body.Content(activityBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	meta := &activity.Meta{}
	if attr, ok := body.Attributes["title"]; ok {
		diags = append(diags, decodeAttr(attr, cty.String, &meta.Title)...)
	}
	if attr, ok := body.Attributes["description"]; ok {
		diags = append(diags, decodeAttr(attr, cty.String, &meta.Description)...)
	}
	if attr, ok := body.Attributes["order"]; ok && !isNull(attr) {
		var n int
		if d := decodeAttr(attr, cty.Number, &n); d.HasErrors() {
			diags = append(diags, d...)
		} else {
			meta.Order = &n
		}
	}
	if attr, ok := body.Attributes["hidden"]; ok {
		diags = append(diags, decodeAttr(attr, cty.Bool, &meta.Hidden)...)
	}
	if attr, ok := body.Attributes["render"]; ok {
		diags = append(diags, decodeAttr(attr, cty.String, &meta.Render)...)
	}
	if diags.HasErrors() {
		return nil, diags
	}

	if strings.TrimSpace(meta.Title) == "" {
		rng := block.DefRange
		if attr, ok := body.Attributes["title"]; ok {
			rng = attr.Range
		}
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Missing activity title",
			Detail:   "The \"title\" attribute is required and must not be empty.",
			Subject:  rng.Ptr(),
		}}
	}
	return meta, nil
}

// decodeAttr evaluates a literal attribute, converts it to ty and stores it in
// target. Null values leave target untouched.
func decodeAttr(attr *hcl.Attribute, ty cty.Type, target any) hcl.Diagnostics {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return diags
	}
	if val.IsNull() {
		return nil
	}

	converted, err := convert.Convert(val, ty)
	if err == nil {
		err = gocty.FromCtyValue(converted, target)
	}
	if err != nil {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Invalid value for %q", attr.Name),
			Detail:   fmt.Sprintf("Expected %s: %s.", ty.FriendlyName(), err),
			Subject:  attr.Expr.Range().Ptr(),
		}}
	}
	return nil
}

func isNull(attr *hcl.Attribute) bool {
	val, diags := attr.Expr.Value(nil)
	return diags.HasErrors() || val.IsNull()
}
