// Package preview serves a read-only HTML rendition of the gallery widget
// from a host data snapshot. Forms and delete buttons post to the backend;
// the preview itself never changes its records.
package preview

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/goliatone/go-gallery/pkg/listing"
	"github.com/goliatone/go-gallery/pkg/render"
	"github.com/goliatone/go-gallery/pkg/renderers/vanilla"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// NewHandler builds the page handler with default options plus overrides.
func NewHandler(fns ...OptionFn) (http.Handler, error) {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds the page handler from a pre-built Options value.
func HandlerWithOptions(opts Options) (http.Handler, error) {
	opts = NewOptions(func(o *Options) { *o = opts })

	renderer := opts.Renderer
	if renderer == nil {
		r, err := vanilla.New(vanilla.WithBasePath(opts.RoutePath))
		if err != nil {
			return nil, fmt.Errorf("preview: %w", err)
		}
		renderer = r
	}
	ro := opts.RenderOptions
	ro.HiddenFields = render.MergeHiddenFields(ro.HiddenFields, render.CSRFToken(opts.Token))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeError(w, err, http.StatusForbidden)
				return
			}
		}

		body, err := renderPage(r, renderer, ro, opts)
		if err != nil {
			opts.Logger.Warn("gallery preview render failed", "path", r.URL.Path, "err", err)
			writeError(w, err, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", renderer.ContentType())
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(body)
	}), nil
}

// renderPage rebuilds the widget state from the query on every request.
func renderPage(r *http.Request, renderer render.Renderer, ro render.RenderOptions, opts Options) ([]byte, error) {
	query := r.URL.Query()
	list := listing.New(opts.Records, opts.Token, listing.WithPageSize(opts.PageSize), listing.WithLogger(opts.Logger))
	list.SetSearch(query.Get(opts.SearchParam))
	if page := parseInt(query.Get(opts.PageParam)); page > 0 {
		list.GoToPage(page)
	}
	ro.Search = list.SearchTerm()
	ro.Page = list.CurrentPage()

	ctx := r.Context()
	switch query.Get(opts.ViewParam) {
	case "add":
		fc, err := list.Add()
		if err != nil {
			return nil, err
		}
		return renderer.RenderForm(ctx, fc.View(), ro)
	case "edit":
		id, err := strconv.ParseInt(query.Get(opts.IDParam), 10, 64)
		if err != nil {
			return nil, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("preview: invalid id: %w", err)}
		}
		fc, err := list.Edit(id)
		if errors.Is(err, listing.ErrRecordNotFound) {
			return nil, StatusError{Code: http.StatusNotFound, Err: err}
		}
		if err != nil {
			return nil, err
		}
		return renderer.RenderForm(ctx, fc.View(), ro)
	case "":
		return renderer.RenderList(ctx, list.Page(), ro)
	default:
		return nil, StatusError{Code: http.StatusBadRequest, Err: errors.New("preview: unknown view")}
	}
}

func writeError(w http.ResponseWriter, err error, fallback int) {
	code := fallback
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
