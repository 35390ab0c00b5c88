// Package preact renders a hydration shell for a client-side gallery widget:
// an empty mount point, a JSON state island, and the bundle's script tags.
package preact

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-gallery/pkg/endpoints"
	"github.com/goliatone/go-gallery/pkg/form"
	"github.com/goliatone/go-gallery/pkg/listing"
	"github.com/goliatone/go-gallery/pkg/model"
	"github.com/goliatone/go-gallery/pkg/render"
	rendertemplate "github.com/goliatone/go-gallery/pkg/render/template"
	"github.com/goliatone/go-gallery/pkg/render/template/gotemplate"
)

// Name is the registry key of the hydration renderer.
const Name = "preact"

const (
	templateName = "templates/page.tmpl"
	rootID       = "gallery-root"
	dataID       = "gallery-data"

	themeAssetVendorScript = "preact.vendor"
	themeAssetAppScript    = "preact.app"
	themeAssetStylesheet   = "preact.stylesheet"
)

// AssetPaths are the bundle URLs emitted by the shell. Empty entries are
// omitted.
type AssetPaths struct {
	VendorScript string
	AppScript    string
	Stylesheet   string
}

// DefaultAssetPaths point at the bundle names the widget is published with.
var DefaultAssetPaths = AssetPaths{
	VendorScript: "vendor/preact.production.min.js",
	AppScript:    "gallery-preact.min.js",
	Stylesheet:   "gallery-preact.min.css",
}

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	assetPaths       AssetPaths
	assetURLPrefix   string
	theme            *theme.RendererConfig
	contract         *endpoints.Contract
}

// WithTemplatesFS supplies an alternate shell via fs.FS. The bundle must
// contain templates/page.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

func WithAssetPaths(paths AssetPaths) Option {
	return func(cfg *config) {
		cfg.assetPaths = paths
	}
}

// WithAssetURLPrefix is prepended to relative asset paths.
func WithAssetURLPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.assetURLPrefix = prefix
	}
}

// WithTheme applies theme tokens; theme assets named preact.vendor,
// preact.app, and preact.stylesheet override the asset paths.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

func WithContract(contract *endpoints.Contract) Option {
	return func(cfg *config) {
		if contract != nil {
			cfg.contract = contract
		}
	}
}

type Renderer struct {
	templates      rendertemplate.TemplateRenderer
	assetPaths     AssetPaths
	assetURLPrefix string
	theme          *theme.RendererConfig
	contract       *endpoints.Contract
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		assetPaths: DefaultAssetPaths,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if _, err := fs.Stat(cfg.templateFS, templateName); err != nil {
		return nil, fmt.Errorf("preact renderer: template %s: %w", templateName, err)
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("preact renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	contract := cfg.contract
	if contract == nil {
		var err error
		if contract, err = endpoints.Default(); err != nil {
			return nil, fmt.Errorf("preact renderer: %w", err)
		}
	}

	return &Renderer{
		templates:      templates,
		assetPaths:     cfg.assetPaths,
		assetURLPrefix: cfg.assetURLPrefix,
		theme:          cfg.theme,
		contract:       contract,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// listState is the island payload for the list screen.
type listState struct {
	Screen       string        `json:"screen"`
	Records      []recordState `json:"records"`
	Search       string        `json:"search"`
	Page         int           `json:"page"`
	PageSize     int           `json:"pageSize"`
	TotalPages   int           `json:"totalPages"`
	PrevDisabled bool          `json:"prevDisabled"`
	NextDisabled bool          `json:"nextDisabled"`
	common
}

type recordState struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
	Status       int      `json:"status"`
	DeleteAction string   `json:"deleteAction"`
}

// formState is the island payload for the create and edit screens.
type formState struct {
	Screen      string      `json:"screen"`
	Mode        string      `json:"mode"`
	RecordID    int64       `json:"recordId,omitempty"`
	Method      string      `json:"method"`
	Action      string      `json:"action"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
	Slots       []slotState `json:"slots"`
	Search      string      `json:"search,omitempty"`
	Page        int         `json:"page,omitempty"`
	common
}

type slotState struct {
	Kind string `json:"kind"`
	Ref  string `json:"ref,omitempty"`
	Src  string `json:"src,omitempty"`
}

type common struct {
	ImagePrefix string            `json:"imagePrefix"`
	Hidden      []hiddenState     `json:"hidden,omitempty"`
	Labels      map[string]string `json:"labels"`
}

type hiddenState struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (r *Renderer) RenderList(_ context.Context, page listing.PageView, opts render.RenderOptions) ([]byte, error) {
	deleteEndpoint, err := r.contract.Lookup(endpoints.OpDelete)
	if err != nil {
		return nil, fmt.Errorf("preact renderer: %w", err)
	}
	state := listState{
		Screen:       "list",
		Records:      make([]recordState, 0, len(page.Records)),
		Search:       page.SearchTerm,
		Page:         page.Page,
		PageSize:     page.PageSize,
		TotalPages:   page.TotalPages,
		PrevDisabled: page.PrevDisabled,
		NextDisabled: page.NextDisabled,
		common:       commonState(opts),
	}
	for _, record := range page.Records {
		path, err := deleteEndpoint.ForID(record.ID)
		if err != nil {
			return nil, fmt.Errorf("preact renderer: %w", err)
		}
		images := record.Images
		if images == nil {
			images = []string{}
		}
		state.Records = append(state.Records, recordState{
			ID:           record.ID,
			Title:        record.Title,
			Description:  record.Description,
			Images:       images,
			Status:       int(record.Status),
			DeleteAction: opts.Action(path),
		})
	}
	return r.render("list", state)
}

func (r *Renderer) RenderForm(_ context.Context, view form.View, opts render.RenderOptions) ([]byte, error) {
	state := formState{
		Screen:      "form",
		Mode:        string(view.Mode),
		RecordID:    view.RecordID,
		Method:      view.Method,
		Action:      opts.Action(view.Action),
		Title:       view.Title,
		Description: view.Description,
		Status:      view.Status,
		Slots:       make([]slotState, 0, len(view.Slots)),
		Search:      opts.Search,
		Page:        opts.Page,
		common:      commonState(opts),
	}
	for _, slot := range view.Slots {
		ss := slotState{Kind: slot.Kind, Ref: slot.Ref}
		if slot.Kind == string(model.SlotKindExisting) {
			ss.Src = model.ImageURL(opts.Prefix(), slot.Ref)
		}
		state.Slots = append(state.Slots, ss)
	}
	return r.render("form", state)
}

func (r *Renderer) render(screen string, state any) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("preact renderer: template renderer is nil")
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("preact renderer: marshal state: %w", err)
	}

	resolve := func(string) string { return "" }
	if r.theme != nil && r.theme.AssetURL != nil {
		resolve = r.theme.AssetURL
	}
	data := map[string]any{
		"root_id":    rootID,
		"data_id":    dataID,
		"screen":     screen,
		"state_json": string(payload),
		"assets": map[string]string{
			"vendorScript": r.assetURL(resolve(themeAssetVendorScript), r.assetPaths.VendorScript),
			"appScript":    r.assetURL(resolve(themeAssetAppScript), r.assetPaths.AppScript),
			"stylesheet":   r.assetURL(resolve(themeAssetStylesheet), r.assetPaths.Stylesheet),
		},
		"theme": buildThemeContext(r.theme),
	}

	rendered, err := r.templates.RenderTemplate(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("preact renderer: render template: %w", err)
	}
	return []byte(rendered), nil
}

func (r *Renderer) assetURL(themed, path string) string {
	if themed != "" {
		return themed
	}
	if path == "" || r.assetURLPrefix == "" || strings.Contains(path, "://") || strings.HasPrefix(path, "/") {
		return path
	}
	return strings.TrimRight(r.assetURLPrefix, "/") + "/" + strings.TrimLeft(path, "/")
}

func commonState(opts render.RenderOptions) common {
	out := common{ImagePrefix: opts.Prefix(), Labels: opts.Labels()}
	for _, field := range render.SortedHiddenFields(opts.HiddenFields) {
		out.Hidden = append(out.Hidden, hiddenState{Name: field.Name, Value: field.Value})
	}
	return out
}

type rendererTheme struct {
	Name         string `json:"name"`
	Variant      string `json:"variant"`
	CSSVarsStyle string `json:"css_vars_style,omitempty"`
}

func buildThemeContext(cfg *theme.RendererConfig) rendererTheme {
	if cfg == nil {
		return rendererTheme{}
	}
	return rendererTheme{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if strings.HasPrefix(key, "--") && !strings.ContainsAny(key+vars[key], ";{}<>") {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("#" + rootID + " {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
