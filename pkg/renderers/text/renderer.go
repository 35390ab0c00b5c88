// Package text renders the gallery screens as aligned plain-text tables for
// terminals and logs.
package text

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-gallery/pkg/form"
	"github.com/goliatone/go-gallery/pkg/listing"
	"github.com/goliatone/go-gallery/pkg/model"
	"github.com/goliatone/go-gallery/pkg/render"
)

// Name is the registry key of the text renderer.
const Name = "text"

// Option configures the Renderer.
type Option func(*Renderer)

// WithMaxWidth truncates title and description cells to width runes.
func WithMaxWidth(width int) Option {
	return func(r *Renderer) {
		if width > 3 {
			r.maxWidth = width
		}
	}
}

// WithImageURLs prints full image URLs instead of stored references.
func WithImageURLs(enabled bool) Option {
	return func(r *Renderer) {
		r.imageURLs = enabled
	}
}

// Renderer writes tab-aligned tables.
type Renderer struct {
	maxWidth  int
	imageURLs bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a text renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{maxWidth: 40}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string        { return Name }
func (r *Renderer) ContentType() string { return "text/plain; charset=utf-8" }

// RenderList writes the heading, one row per record, and the page indicator.
func (r *Renderer) RenderList(_ context.Context, page listing.PageView, opts render.RenderOptions) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, opts.Label(render.KeyListHeading))
	if page.SearchTerm != "" {
		fmt.Fprintf(&buf, "%s %q\n", strings.TrimSuffix(opts.Label(render.KeySearch), "..."), page.SearchTerm)
	}
	fmt.Fprintln(&buf)

	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		opts.Label(render.KeyColumnID),
		opts.Label(render.KeyColumnTitle),
		opts.Label(render.KeyColumnDesc),
		opts.Label(render.KeyColumnImages),
		opts.Label(render.KeyColumnStatus),
	)
	if page.Empty() {
		fmt.Fprintf(tw, "%s\t\t\t\t\n", opts.Label(render.KeyNoRecords))
	}
	for _, record := range page.Records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			record.ID,
			r.cell(record.Title),
			r.cell(record.Description),
			r.images(record.Images, opts),
			statusLabel(opts, record.Status),
		)
	}
	if err := tw.Flush(); err != nil {
		return nil, fmt.Errorf("text renderer: flush table: %w", err)
	}

	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, opts.Label(render.KeyPageOf)+"\n", page.Page, page.TotalPages)
	return buf.Bytes(), nil
}

// RenderForm writes the buffer as a field/value listing.
func (r *Renderer) RenderForm(_ context.Context, view form.View, opts render.RenderOptions) ([]byte, error) {
	heading, submit := opts.Label(render.KeyCreateTitle), opts.Label(render.KeySave)
	if view.Mode == form.ModeEdit {
		heading, submit = opts.Label(render.KeyEditTitle), opts.Label(render.KeyUpdate)
	}
	status, err := model.ParseStatus(view.Status)
	if err != nil {
		return nil, fmt.Errorf("text renderer: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, heading)
	fmt.Fprintln(&buf)

	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s:\t%s\n", opts.Label(render.KeyColumnTitle), view.Title)
	fmt.Fprintf(tw, "%s:\t%s\n", opts.Label(render.KeyColumnDesc), view.Description)
	fmt.Fprintf(tw, "%s:\t%s\n", opts.Label(render.KeyColumnStatus), statusLabel(opts, status))
	for _, slot := range view.Slots {
		fmt.Fprintf(tw, "%s %d:\t%s\n", opts.Label(render.KeyColumnImages), slot.Index+1, slotLabel(slot, opts))
	}
	if err := tw.Flush(); err != nil {
		return nil, fmt.Errorf("text renderer: flush form: %w", err)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "[%s] %s %s\n", submit, view.Method, opts.Action(view.Action))
	return buf.Bytes(), nil
}

func (r *Renderer) cell(value string) string {
	value = strings.Join(strings.Fields(value), " ")
	runes := []rune(value)
	if len(runes) <= r.maxWidth {
		return value
	}
	return string(runes[:r.maxWidth-3]) + "..."
}

func (r *Renderer) images(refs []string, opts render.RenderOptions) string {
	if len(refs) == 0 {
		return "-"
	}
	if !r.imageURLs {
		return strings.Join(refs, ", ")
	}
	urls := make([]string, 0, len(refs))
	for _, ref := range refs {
		urls = append(urls, model.ImageURL(opts.Prefix(), ref))
	}
	return strings.Join(urls, ", ")
}

func statusLabel(opts render.RenderOptions, status model.Status) string {
	if status.Active() {
		return opts.Label(render.KeyActive)
	}
	return opts.Label(render.KeyInactive)
}

func slotLabel(slot form.SlotView, opts render.RenderOptions) string {
	switch {
	case slot.Kind == string(model.SlotKindExisting):
		return model.ImageURL(opts.Prefix(), slot.Ref)
	case slot.FileName != "":
		return "new: " + slot.FileName
	default:
		return "new: (no file)"
	}
}
