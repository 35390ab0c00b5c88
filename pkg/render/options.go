package render

import "strings"

// DefaultImagePrefix is the static path images are served from.
const DefaultImagePrefix = "/storage/"

// RenderOptions describe per-request data that renderers use without
// touching controller state.
type RenderOptions struct {
	// ImagePrefix is joined with stored image references to build preview
	// URLs. Empty means DefaultImagePrefix.
	ImagePrefix string
	// ActionBase is prepended to form actions and delete endpoints when the
	// backend lives on another origin.
	ActionBase string
	// HiddenFields are emitted inside every form, e.g. the security token.
	HiddenFields map[string]string
	// Search and Page carry the list state so form views can link back to
	// the page the user came from.
	Search string
	Page   int
	// Locale and Translator localise headings and labels. Missing keys fall
	// back to the built-in English strings.
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}

// Prefix returns the effective image prefix.
func (o RenderOptions) Prefix() string {
	if strings.TrimSpace(o.ImagePrefix) == "" {
		return DefaultImagePrefix
	}
	return o.ImagePrefix
}

// Action joins ActionBase and path.
func (o RenderOptions) Action(path string) string {
	base := strings.TrimRight(strings.TrimSpace(o.ActionBase), "/")
	if base == "" {
		return path
	}
	return base + "/" + strings.TrimLeft(path, "/")
}
