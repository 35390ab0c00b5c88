package render_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-gallery/pkg/csrf"
	"github.com/goliatone/go-gallery/pkg/form"
	"github.com/goliatone/go-gallery/pkg/listing"
	"github.com/goliatone/go-gallery/pkg/render"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) RenderList(context.Context, listing.PageView, render.RenderOptions) ([]byte, error) {
	return nil, nil
}
func (n namedRenderer) RenderForm(context.Context, form.View, render.RenderOptions) ([]byte, error) {
	return nil, nil
}

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.CSRFToken(csrf.New("token123")),
		render.Hidden(" version ", 4),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing": "keep",
		"_token":   "token123",
		"version":  "4",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(map[string]string{
		"alpha":   "a",
		"_token":  "t",
		"version": "4",
	})
	wantSorted := []render.HiddenField{
		{Name: "_token", Value: "t"},
		{Name: "alpha", Value: "a"},
		{Name: "version", Value: "4"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderOptions_LabelFallbacks(t *testing.T) {
	opts := render.RenderOptions{}
	if got := opts.Label(render.KeyListHeading); got != "Gallery List" {
		t.Fatalf("expected default heading, got %q", got)
	}

	opts.Translator = stubTranslator{render.KeyListHeading: "Galería"}
	if got := opts.Label(render.KeyListHeading); got != "Galería" {
		t.Fatalf("expected translated heading, got %q", got)
	}
	if got := opts.Label(render.KeyNoRecords); got != "No records found" {
		t.Fatalf("missing key must fall back, got %q", got)
	}

	opts.OnMissing = func(locale, key, fallback string, err error) string {
		return "[" + key + "]"
	}
	if got := opts.Label(render.KeyNoRecords); got != "["+render.KeyNoRecords+"]" {
		t.Fatalf("OnMissing must be honoured, got %q", got)
	}

	labels := render.RenderOptions{}.Labels()
	if labels[render.KeyConfirm] != listing.DeleteConfirmation {
		t.Fatalf("confirm label out of sync: %q", labels[render.KeyConfirm])
	}
}

func TestRenderOptions_PrefixAndAction(t *testing.T) {
	if got := (render.RenderOptions{}).Prefix(); got != render.DefaultImagePrefix {
		t.Fatalf("unexpected default prefix %q", got)
	}
	opts := render.RenderOptions{ActionBase: "https://backend.test/"}
	if got := opts.Action("/gallery/store"); got != "https://backend.test/gallery/store" {
		t.Fatalf("unexpected action %q", got)
	}
	if got := (render.RenderOptions{}).Action("/gallery/store"); got != "/gallery/store" {
		t.Fatalf("unexpected action without base %q", got)
	}
}

func TestRegistry(t *testing.T) {
	registry, err := render.NewRegistry(namedRenderer("text"), namedRenderer("html"))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if diff := cmp.Diff([]string{"html", "text"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if err := registry.Register(namedRenderer("html")); err == nil {
		t.Fatalf("duplicate registration must fail")
	}
	if _, err := registry.Get("pdf"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
	if r, err := registry.Get("text"); err != nil || r.Name() != "text" {
		t.Fatalf("get text: %v", err)
	}
}
