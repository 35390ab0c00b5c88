package render

import (
	"errors"
	"strings"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves localisation keys.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides the string used when a key cannot be
// translated.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// Label keys used by the built-in renderers.
const (
	KeyListHeading  = "gallery.list.heading"
	KeyCreateTitle  = "gallery.form.create"
	KeyEditTitle    = "gallery.form.edit"
	KeySave         = "gallery.form.save"
	KeyUpdate       = "gallery.form.update"
	KeyBack         = "gallery.form.back"
	KeyAdd          = "gallery.list.add"
	KeySearch       = "gallery.list.search"
	KeyNoRecords    = "gallery.list.empty"
	KeyPrev         = "gallery.list.prev"
	KeyNext         = "gallery.list.next"
	KeyEdit         = "gallery.list.edit"
	KeyDelete       = "gallery.list.delete"
	KeyConfirm      = "gallery.list.confirm"
	KeyAddImage     = "gallery.form.add_image"
	KeyRemoveImage  = "gallery.form.remove_image"
	KeyColumnID     = "gallery.column.id"
	KeyColumnTitle  = "gallery.column.title"
	KeyColumnDesc   = "gallery.column.description"
	KeyColumnImages = "gallery.column.images"
	KeyColumnStatus = "gallery.column.status"
	KeyColumnAction = "gallery.column.action"
	KeyPageOf       = "gallery.list.page_of"
	KeyActive       = "gallery.status.active"
	KeyInactive     = "gallery.status.inactive"
)

var defaultLabels = map[string]string{
	KeyListHeading:  "Gallery List",
	KeyCreateTitle:  "Create Gallery",
	KeyEditTitle:    "Edit Gallery",
	KeySave:         "Save",
	KeyUpdate:       "Update",
	KeyBack:         "Back",
	KeyAdd:          "Add Gallery",
	KeySearch:       "Search...",
	KeyNoRecords:    "No records found",
	KeyPrev:         "Previous",
	KeyNext:         "Next",
	KeyEdit:         "Edit",
	KeyDelete:       "Delete",
	KeyConfirm:      "Are you sure to delete?",
	KeyAddImage:     "Add Image",
	KeyRemoveImage:  "Remove",
	KeyColumnID:     "ID",
	KeyColumnTitle:  "Title",
	KeyColumnDesc:   "Description",
	KeyColumnImages: "Images",
	KeyColumnStatus: "Status",
	KeyColumnAction: "Action",
	KeyPageOf:       "Page %d of %d",
	KeyActive:       "Active",
	KeyInactive:     "Inactive",
}

// DefaultLabel returns the built-in English string for key.
func DefaultLabel(key string) string {
	return defaultLabels[key]
}

// Label resolves key through the configured translator, falling back to the
// built-in string.
func (o RenderOptions) Label(key string) string {
	return translate(o.Locale, key, DefaultLabel(key), o.Translator, o.OnMissing)
}

// Labels resolves every built-in key. Templates receive the result as a map.
func (o RenderOptions) Labels() map[string]string {
	out := make(map[string]string, len(defaultLabels))
	for key := range defaultLabels {
		out[key] = o.Label(key)
	}
	return out
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, fallback, ErrMissingTranslator)
		}
		if strings.TrimSpace(fallback) != "" {
			return fallback
		}
		return key
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}

	if onMissing != nil {
		return onMissing(locale, key, fallback, err)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}
