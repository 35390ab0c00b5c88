package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-gallery/pkg/endpoints"
	"github.com/goliatone/go-gallery/pkg/form"
	"github.com/goliatone/go-gallery/pkg/listing"
	"github.com/goliatone/go-gallery/pkg/model"
	"github.com/goliatone/go-gallery/pkg/render"
	rendertemplate "github.com/goliatone/go-gallery/pkg/render/template"
	"github.com/goliatone/go-gallery/pkg/render/template/gotemplate"
)

// Name is the registry key of the HTML renderer.
const Name = "vanilla"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	contract         *endpoints.Contract
	basePath         string
	inlineStyles     bool
	inlineScript     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies resolved theme tokens. CSS variables are emitted on the
// widget root and a "gallery.stylesheet" asset replaces the inline styles.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithContract overrides the endpoint contract used for delete actions.
func WithContract(contract *endpoints.Contract) Option {
	return func(cfg *config) {
		if contract != nil {
			cfg.contract = contract
		}
	}
}

// WithBasePath sets the path navigation links (search, paging, add, edit)
// point at. Defaults to the current document.
func WithBasePath(path string) Option {
	return func(cfg *config) {
		cfg.basePath = path
	}
}

// WithInlineStyles toggles the embedded stylesheet (enabled by default).
func WithInlineStyles(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStyles = enabled
	}
}

// WithInlineScript toggles the embedded script behind the image slot buttons
// (enabled by default). ScriptName in AssetsFS holds the same code.
func WithInlineScript(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineScript = enabled
	}
}

// Renderer produces HTML fragments for the list and form screens.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     *theme.RendererConfig
	contract  *endpoints.Contract
	basePath  string
	styles    string
	script    string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), inlineStyles: true, inlineScript: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	contract := cfg.contract
	if contract == nil {
		var err error
		contract, err = endpoints.Default()
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
	}

	r := &Renderer{
		templates: renderer,
		theme:     cfg.theme,
		contract:  contract,
		basePath:  cfg.basePath,
	}
	if cfg.inlineStyles {
		r.styles = defaultStylesheet()
	}
	if cfg.inlineScript {
		r.script = defaultScript()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

type rowView struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
	Status       string   `json:"status"`
	StatusTitle  string   `json:"status_title"`
	EditURL      string   `json:"edit_url"`
	DeleteAction string   `json:"delete_action"`
}

type slotView struct {
	Index    int    `json:"index"`
	Kind     string `json:"kind"`
	Existing bool   `json:"existing"`
	Ref      string `json:"ref"`
	Src      string `json:"src"`
	FileName string `json:"file_name"`
}

// RenderList renders the table screen for page.
func (r *Renderer) RenderList(_ context.Context, page listing.PageView, opts render.RenderOptions) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	deleteEndpoint, err := r.contract.Lookup(endpoints.OpDelete)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}

	rows := make([]rowView, 0, len(page.Records))
	for _, record := range page.Records {
		deletePath, err := deleteEndpoint.ForID(record.ID)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		row := rowView{
			ID:           record.ID,
			Title:        record.Title,
			Description:  plainText(record.Description),
			Images:       make([]string, 0, len(record.Images)),
			Status:       record.Status.Label(),
			StatusTitle:  statusTitle(opts, record.Status),
			EditURL:      r.link(url.Values{"view": {"edit"}, "id": {strconv.FormatInt(record.ID, 10)}, "q": nonEmpty(page.SearchTerm), "page": {strconv.Itoa(page.Page)}}),
			DeleteAction: opts.Action(deletePath),
		}
		for _, ref := range record.Images {
			if src := model.ImageURL(opts.Prefix(), ref); src != "" {
				row.Images = append(row.Images, src)
			}
		}
		rows = append(rows, row)
	}

	data := r.baseData(opts)
	data["search"] = page.SearchTerm
	data["rows"] = rows
	data["page"] = page.Page
	data["total_pages"] = page.TotalPages
	data["page_of"] = fmt.Sprintf(opts.Label(render.KeyPageOf), page.Page, page.TotalPages)
	data["prev_disabled"] = page.PrevDisabled
	data["next_disabled"] = page.NextDisabled
	data["prev_url"] = r.link(url.Values{"q": nonEmpty(page.SearchTerm), "page": {strconv.Itoa(page.Page - 1)}})
	data["next_url"] = r.link(url.Values{"q": nonEmpty(page.SearchTerm), "page": {strconv.Itoa(page.Page + 1)}})
	data["add_url"] = r.link(url.Values{"view": {"add"}, "q": nonEmpty(page.SearchTerm), "page": {strconv.Itoa(page.Page)}})

	result, err := r.templates.RenderTemplate("list.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render list: %w", err)
	}
	return []byte(result), nil
}

// RenderForm renders the create or edit screen.
func (r *Renderer) RenderForm(_ context.Context, view form.View, opts render.RenderOptions) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	heading, submit, name := opts.Label(render.KeyCreateTitle), opts.Label(render.KeySave), "adding"
	if view.Mode == form.ModeEdit {
		heading, submit, name = opts.Label(render.KeyEditTitle), opts.Label(render.KeyUpdate), "editing"
	}

	slots := make([]slotView, 0, len(view.Slots))
	for _, slot := range view.Slots {
		sv := slotView{
			Index:    slot.Index,
			Kind:     slot.Kind,
			Existing: slot.Kind == string(model.SlotKindExisting),
			Ref:      slot.Ref,
			FileName: slot.FileName,
		}
		if sv.Existing {
			sv.Src = model.ImageURL(opts.Prefix(), slot.Ref)
		}
		slots = append(slots, sv)
	}

	status, err := model.ParseStatus(view.Status)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}

	method := view.Method
	if method == "" {
		method = "POST"
	}

	data := r.baseData(opts)
	data["view"] = name
	data["heading"] = heading
	data["submit_label"] = submit
	data["method"] = method
	data["action"] = opts.Action(view.Action)
	data["title"] = view.Title
	data["description"] = view.Description
	data["active"] = status.Active()
	data["slots"] = slots
	back := url.Values{"q": nonEmpty(opts.Search)}
	if opts.Page > 0 {
		back.Set("page", strconv.Itoa(opts.Page))
	}
	data["back_url"] = r.link(back)
	data["script"] = r.script

	result, err := r.templates.RenderTemplate("form.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render form: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) baseData(opts render.RenderOptions) map[string]any {
	data := map[string]any{
		"classes":   chromeClasses(),
		"labels":    templateLabels(opts),
		"hidden":    render.SortedHiddenFields(opts.HiddenFields),
		"base_path": r.basePathOrDefault(),
		"theme":     buildThemeContext(r.theme),
	}
	styles := r.styles
	if href := themeAsset(r.theme, stylesheetAssetKey); href != "" {
		data["stylesheet_url"] = href
		styles = ""
	}
	if vars := cssVarsStyle(themeCSSVars(r.theme)); vars != "" {
		styles = vars + "\n" + styles
	}
	data["styles"] = styles
	return data
}

func (r *Renderer) basePathOrDefault() string {
	if r.basePath == "" {
		return "."
	}
	return r.basePath
}

func (r *Renderer) link(values url.Values) string {
	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			delete(values, key)
		}
	}
	query := values.Encode()
	if query == "" {
		return r.basePathOrDefault()
	}
	return r.basePath + "?" + query
}

func nonEmpty(value string) []string {
	if value == "" {
		return nil
	}
	return []string{value}
}

func statusTitle(opts render.RenderOptions, status model.Status) string {
	if status.Active() {
		return opts.Label(render.KeyActive)
	}
	return opts.Label(render.KeyInactive)
}

// templateLabels maps the render keys onto identifiers pongo2 can address.
func templateLabels(opts render.RenderOptions) map[string]string {
	return map[string]string{
		"heading":         opts.Label(render.KeyListHeading),
		"add":             opts.Label(render.KeyAdd),
		"search":          opts.Label(render.KeySearch),
		"empty":           opts.Label(render.KeyNoRecords),
		"prev":            opts.Label(render.KeyPrev),
		"next":            opts.Label(render.KeyNext),
		"edit":            opts.Label(render.KeyEdit),
		"delete":          opts.Label(render.KeyDelete),
		"confirm":         opts.Label(render.KeyConfirm),
		"back":            opts.Label(render.KeyBack),
		"add_image":       opts.Label(render.KeyAddImage),
		"remove_image":    opts.Label(render.KeyRemoveImage),
		"active":          opts.Label(render.KeyActive),
		"inactive":        opts.Label(render.KeyInactive),
		"col_id":          opts.Label(render.KeyColumnID),
		"col_title":       opts.Label(render.KeyColumnTitle),
		"col_description": opts.Label(render.KeyColumnDesc),
		"col_images":      opts.Label(render.KeyColumnImages),
		"col_status":      opts.Label(render.KeyColumnStatus),
		"col_action":      opts.Label(render.KeyColumnAction),
	}
}
