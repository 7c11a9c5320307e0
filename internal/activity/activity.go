// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Activity, the unit the registry hands out: a manifest
// (metadata read from disk) bound to an optional compiled render entry.
//
// Why keep the manifest and the render entry apart?
//
// Discovery must never run activity code. The manifest is parsed as data, and
// the render entry is looked up by name in a table filled by compiled Go
// packages. An activity whose entry is missing still resolves; invoking it
// surfaces a structured error instead.
package activity

import (
	"context"
	"fmt"
	"math"
	"path"
	"strings"

	"github.com/vk/mathlab/internal/diag"
	"github.com/vk/mathlab/internal/page"
)

// RenderFunc is an activity's render entry. It writes onto the page of the
// current view and runs to completion within one render.
type RenderFunc func(ctx context.Context, p *page.Page) error

// Meta is the declared metadata of an activity manifest.
type Meta struct {
	Title       string
	Description string
	Order       *int // nil sorts after every explicit order
	Hidden      bool
	Render      string // render entry name; empty selects "<subject>/<slug>"
}

// SortOrder returns Order with nil mapped to +∞.
func (m Meta) SortOrder() int {
	if m.Order == nil {
		return math.MaxInt
	}
	return *m.Order
}

// Activity is one discovered activity.
type Activity struct {
	Subject  string
	Slug     string
	Meta     Meta
	Source   string // manifest path
	Reserved bool   // manifest base name starts with "_"
	Render   RenderFunc
}

// ID returns "<subject>/<slug>", which is also the activity's route.
func (a *Activity) ID() string {
	return a.Subject + "/" + a.Slug
}

// EntryName is the render entry name the manifest binds to.
func (a *Activity) EntryName() string {
	if a.Meta.Render != "" {
		return a.Meta.Render
	}
	return a.ID()
}

// Listed reports whether the activity appears in enumerations.
func (a *Activity) Listed() bool {
	return !a.Meta.Hidden && !a.Reserved
}

// Invoke runs the render entry. Failures, panics and a missing entry are all
// returned as *diag.RenderError.
func (a *Activity) Invoke(ctx context.Context, p *page.Page) (err error) {
	if a.Render == nil {
		return &diag.RenderError{Subject: a.Subject, Slug: a.Slug, Err: fmt.Errorf("%w: %q", diag.ErrNoRenderEntry, a.EntryName())}
	}
	defer func() {
		if r := recover(); r != nil {
			err = &diag.RenderError{Subject: a.Subject, Slug: a.Slug, Panic: true, Err: fmt.Errorf("%v", r)}
		}
	}()
	if rerr := a.Render(ctx, p); rerr != nil {
		return &diag.RenderError{Subject: a.Subject, Slug: a.Slug, Err: rerr}
	}
	return nil
}

// IsReservedName reports whether a manifest file name is reserved: any base
// name starting with an underscore, which covers "__init__" too.
func IsReservedName(name string) bool {
	return strings.HasPrefix(path.Base(name), "_")
}
