// Package render turns curriculum items and activities into page content.
//
// Every failure is contained where it happens: the renderer writes a
// diagnostic panel in place of the content, returns the error to the caller
// for logging and leaves the rest of the page intact.
package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vk/mathlab/internal/activity"
	"github.com/vk/mathlab/internal/ctxlog"
	"github.com/vk/mathlab/internal/curriculum"
	"github.com/vk/mathlab/internal/diag"
	"github.com/vk/mathlab/internal/embed"
	"github.com/vk/mathlab/internal/metrics"
	"github.com/vk/mathlab/internal/page"
	"github.com/vk/mathlab/internal/route"
)

const videoAllow = "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share"

// Renderer renders items and activities onto pages.
type Renderer struct {
	resolver curriculum.Resolver
	metrics  *metrics.Metrics
}

// New creates a renderer resolving activity references through resolver.
// m may be nil.
func New(resolver curriculum.Resolver, m *metrics.Metrics) *Renderer {
	return &Renderer{resolver: resolver, metrics: m}
}

// Item renders one item. The returned error has already been shown on the
// page as a diagnostic.
func (r *Renderer) Item(ctx context.Context, p *page.Page, item curriculum.Item) error {
	switch it := item.(type) {
	case curriculum.Canva:
		p.Iframe(it.Src, it.Title, embed.ClampHeight(it.Height, embed.DefaultHeight), page.WithAllow("fullscreen"))
	case curriculum.Pdf:
		p.Iframe(it.Src, it.Title, embed.ClampHeight(it.Height, embed.DefaultHeight))
		if it.Download != "" {
			p.LinkButton("PDF 내려받기", it.Download)
		}
	case curriculum.GSheet:
		p.Iframe(embed.SheetPreview(it.Src), it.Title, embed.ClampHeight(it.Height, embed.DefaultSheetHeight))
	case curriculum.YouTube:
		src, err := embed.YouTubeEmbed(it.Src)
		if err != nil {
			p.Diagnostic("동영상 주소를 해석할 수 없습니다", err.Error())
			return err
		}
		p.Iframe(src, it.Title, embed.ClampHeight(it.Height, embed.DefaultVideoHeight), page.WithAllow(videoAllow))
	case curriculum.Iframe:
		p.Iframe(it.Src, it.Title, embed.ClampHeight(it.Height, embed.DefaultHeight))
	case curriculum.Image:
		width := 0
		if it.Width != nil {
			width = *it.Width
		}
		if len(it.Srcs) > 0 {
			cols := 1
			if it.Cols != nil {
				cols = *it.Cols
			}
			p.ImageGrid(it.Srcs, cols, width, it.Caption)
		} else {
			p.Image(it.Src, width, it.Caption)
		}
	case curriculum.ActivityRef:
		a, err := r.resolve(ctx, p, it)
		if err != nil {
			return err
		}
		return r.Activity(ctx, p, a)
	default:
		err := fmt.Errorf("unknown item kind %T", item)
		p.Diagnostic("알 수 없는 항목", err.Error())
		return err
	}
	return nil
}

func (r *Renderer) resolve(ctx context.Context, p *page.Page, ref curriculum.ActivityRef) (*activity.Activity, error) {
	a, err := r.resolver.Get(ref.Subject, ref.Slug)
	if err != nil {
		r.metrics.LookupError(diag.KindActivity)
		ctxlog.FromContext(ctx).Warn("Activity reference did not resolve.", "subject", ref.Subject, "slug", ref.Slug, "error", err)
		p.Diagnostic("활동을 찾을 수 없습니다: "+ref.Route(),
			fmt.Sprintf("subject = %s", ref.Subject),
			fmt.Sprintf("slug = %s", ref.Slug),
		)
		return nil, err
	}
	return a, nil
}

// Activity invokes the activity's render entry. Errors and panics are shown
// as a diagnostic naming the activity and returned as *diag.RenderError.
func (r *Renderer) Activity(ctx context.Context, p *page.Page, a *activity.Activity) error {
	logger := ctxlog.FromContext(ctx).With("subject", a.Subject, "slug", a.Slug)

	start := time.Now()
	err := a.Invoke(ctx, p)
	if err == nil {
		logger.Debug("Activity rendered.", "duration", time.Since(start))
		return nil
	}

	r.metrics.RenderError(a.Subject)
	short := err.Error()
	var re *diag.RenderError
	if errors.As(err, &re) {
		short = re.Short()
		if re.Panic {
			logger.Error("Activity render entry panicked.", "error", re.Err)
		} else {
			logger.Error("Activity render entry failed.", "error", re.Err)
		}
	}
	p.Diagnostic("활동을 표시하는 중 오류가 발생했습니다: "+a.ID(),
		fmt.Sprintf("subject = %s, slug = %s", a.Subject, a.Slug),
		short,
	)
	return err
}

// Leaf renders the items of a leaf node in declared order, each under its
// title. Every activity gets its own input scope named after its anchor, so
// activities sharing widget keys stay independent. It keeps going after a
// failed item and returns every error.
func (r *Renderer) Leaf(ctx context.Context, p *page.Page, n *curriculum.Node) error {
	var errs []error
	for i, item := range n.Items {
		anchor := ItemAnchor(i)
		p.Anchor(anchor)

		if ref, ok := item.(curriculum.ActivityRef); ok {
			a, err := r.resolve(ctx, p, ref)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			title := ref.Title
			if title == "" {
				title = a.Meta.Title
			}
			p.Header(title)
			if err := r.Activity(ctx, p.Scope(anchor), a); err != nil {
				errs = append(errs, err)
			}
			continue
		}

		if title := item.ItemTitle(); title != "" {
			p.Header(title)
		}
		if err := r.Item(ctx, p, item); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ItemAnchor is the anchor and input scope of the i-th (0-based) leaf item.
func ItemAnchor(i int) string { return fmt.Sprintf("item-%d", i+1) }

// Outline renders the children of an internal node as links.
func (r *Renderer) Outline(p *page.Page, subject string, n *curriculum.Node) {
	for _, child := range n.Children {
		p.Link(child.Label, route.Leaf(subject, child.Key).String())
	}
}
