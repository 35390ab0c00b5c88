package render

import (
	"context"

	"github.com/goliatone/go-gallery/pkg/form"
	"github.com/goliatone/go-gallery/pkg/listing"
)

// Renderer turns the widget's view projections into a byte representation
// (HTML, plain text, ...).
type Renderer interface {
	Name() string
	ContentType() string
	RenderList(ctx context.Context, page listing.PageView, options RenderOptions) ([]byte, error)
	RenderForm(ctx context.Context, view form.View, options RenderOptions) ([]byte, error)
}
