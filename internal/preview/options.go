package preview

import (
	"log/slog"
	"net/http"

	"github.com/goliatone/go-gallery/internal/logging"
	"github.com/goliatone/go-gallery/pkg/csrf"
	"github.com/goliatone/go-gallery/pkg/model"
	"github.com/goliatone/go-gallery/pkg/render"
)

// GuardFunc rejects a request before rendering. Errors carrying a
// StatusCode() pick the response code.
type GuardFunc func(r *http.Request) error

// Options configures the preview handler.
type Options struct {
	RoutePath   string
	AssetsPath  string
	SearchParam string
	PageParam   string
	ViewParam   string
	IDParam     string
	PageSize    int

	Records       []model.Record
	Token         csrf.Token
	Renderer      render.Renderer
	RenderOptions render.RenderOptions
	Guard         GuardFunc
	Logger        *slog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:   "/gallery",
		AssetsPath:  "/assets/",
		SearchParam: "q",
		PageParam:   "page",
		ViewParam:   "view",
		IDParam:     "id",
		PageSize:    3,
	}
}

// NewOptions applies fns over the defaults and clamps empty values.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	def := DefaultOptions()
	if opts.RoutePath == "" {
		opts.RoutePath = def.RoutePath
	}
	if opts.AssetsPath == "" {
		opts.AssetsPath = def.AssetsPath
	}
	if opts.SearchParam == "" {
		opts.SearchParam = def.SearchParam
	}
	if opts.PageParam == "" {
		opts.PageParam = def.PageParam
	}
	if opts.ViewParam == "" {
		opts.ViewParam = def.ViewParam
	}
	if opts.IDParam == "" {
		opts.IDParam = def.IDParam
	}
	if opts.PageSize <= 0 {
		opts.PageSize = def.PageSize
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	opts.Records = model.CloneRecords(opts.Records)
	return opts
}

// WithRecords sets the snapshot served by the preview.
func WithRecords(records []model.Record) OptionFn {
	return func(o *Options) {
		o.Records = records
	}
}

func WithToken(token csrf.Token) OptionFn {
	return func(o *Options) {
		o.Token = token
	}
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		o.RoutePath = path
	}
}

func WithAssetsPath(path string) OptionFn {
	return func(o *Options) {
		o.AssetsPath = path
	}
}

func WithPageSize(size int) OptionFn {
	return func(o *Options) {
		o.PageSize = size
	}
}

// WithRenderer overrides the HTML renderer. The default is the vanilla
// renderer linked to RoutePath.
func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		o.Renderer = renderer
	}
}

// WithRenderOptions sets the image prefix, backend action base, and labels.
func WithRenderOptions(ro render.RenderOptions) OptionFn {
	return func(o *Options) {
		o.RenderOptions = ro
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		o.Guard = guard
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		o.Logger = logger
	}
}
