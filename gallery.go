// Package gallery exposes shortcuts over the widget packages for callers that
// only need to load a snapshot and render a screen.
package gallery

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-gallery/pkg/hostdata"
	"github.com/goliatone/go-gallery/pkg/listing"
	"github.com/goliatone/go-gallery/pkg/model"
	"github.com/goliatone/go-gallery/pkg/render"
	"github.com/goliatone/go-gallery/pkg/renderers/vanilla"
)

// Record aliases model.Record.
type Record = model.Record

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// Snapshot aliases hostdata.Snapshot.
type Snapshot = hostdata.Snapshot

// NewLoader builds a snapshot loader.
func NewLoader(options ...hostdata.Option) *hostdata.Loader {
	return hostdata.NewLoader(options...)
}

// LoadSnapshot reads a snapshot from a file path or http(s) URL.
func LoadSnapshot(ctx context.Context, location string, options ...hostdata.Option) (Snapshot, error) {
	src, err := hostdata.Parse(location)
	if err != nil {
		return Snapshot{}, err
	}
	return hostdata.NewLoader(options...).Load(ctx, src)
}

// ListHTML renders one list page of snap with the vanilla renderer. The
// snapshot token is added as the hidden security field.
func ListHTML(ctx context.Context, snap Snapshot, search string, page int, opts RenderOptions) ([]byte, error) {
	list := listing.New(snap.Records, snap.CSRF())
	list.SetSearch(search)
	if page > 1 && !list.GoToPage(page) {
		return nil, fmt.Errorf("gallery: page %d out of range", page)
	}
	r, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	opts.HiddenFields = render.MergeHiddenFields(opts.HiddenFields, render.CSRFToken(snap.CSRF()))
	return r.RenderList(ctx, list.Page(), opts)
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can extend
// them and pass the result to vanilla.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the default stylesheet for serving over HTTP.
//
//	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServerFS(gallery.AssetsFS())))
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
