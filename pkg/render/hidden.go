package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-gallery/pkg/csrf"
)

// HiddenField is a hidden form input emitted alongside the visible controls.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs the hidden field the backend reads the security token
// from.
func CSRFToken(token csrf.Token) HiddenField {
	return Hidden(csrf.FieldName, token.Value())
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if field.Name == "" {
			continue
		}
		out[field.Name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields returns the fields ordered by name with the security
// token first.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	result := make([]HiddenField, 0, len(fields))
	for name, value := range fields {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		result = append(result, HiddenField{Name: key, Value: value})
	}
	sort.Slice(result, func(i, j int) bool {
		if (result[i].Name == csrf.FieldName) != (result[j].Name == csrf.FieldName) {
			return result[i].Name == csrf.FieldName
		}
		return result[i].Name < result[j].Name
	})
	if len(result) == 0 {
		return nil
	}
	return result
}
