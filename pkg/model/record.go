package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Status is the active/inactive flag stored by the backend as 1 or 0.
type Status int

const (
	StatusInactive Status = 0
	StatusActive   Status = 1
)

// Active reports whether the record is published.
func (s Status) Active() bool {
	return s != StatusInactive
}

// Label returns the lower-case text used for searching.
func (s Status) Label() string {
	if s.Active() {
		return "active"
	}
	return "inactive"
}

// Title returns the label shown in the list table.
func (s Status) Title() string {
	if s.Active() {
		return "Active"
	}
	return "Inactive"
}

// FormValue returns the value submitted in the status field.
func (s Status) FormValue() string {
	if s.Active() {
		return "1"
	}
	return "0"
}

// ParseStatus interprets the textual forms a status flag can take in host data
// or on the command line.
func ParseStatus(raw string) (Status, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", "0", "false", "inactive", "off", "no":
		return StatusInactive, nil
	case "1", "true", "active", "on", "yes":
		return StatusActive, nil
	}
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		if n == 0 {
			return StatusInactive, nil
		}
		return StatusActive, nil
	}
	return StatusInactive, fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// MarshalJSON encodes the status as the backend's integer flag.
func (s Status) MarshalJSON() ([]byte, error) {
	if s.Active() {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// UnmarshalJSON accepts booleans, numbers, numeric strings, and null.
func (s *Status) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = StatusInactive
		return nil
	}

	var raw any
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}
	parsed, err := statusFromAny(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML snapshots.
func (s *Status) UnmarshalYAML(node *yaml.Node) error {
	if node == nil || node.Tag == "!!null" {
		*s = StatusInactive
		return nil
	}
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: expected scalar, got kind %d", ErrInvalidStatus, node.Kind)
	}
	parsed, err := ParseStatus(node.Value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func statusFromAny(raw any) (Status, error) {
	switch v := raw.(type) {
	case nil:
		return StatusInactive, nil
	case bool:
		if v {
			return StatusActive, nil
		}
		return StatusInactive, nil
	case float64:
		if v == 0 {
			return StatusInactive, nil
		}
		return StatusActive, nil
	case string:
		return ParseStatus(v)
	default:
		return StatusInactive, fmt.Errorf("%w: unsupported type %T", ErrInvalidStatus, raw)
	}
}

// Record is the client's cached copy of a gallery entity. The backend assigns
// the id and owns persistence.
type Record struct {
	ID          int64    `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Images      []string `json:"images" yaml:"images"`
	Status      Status   `json:"status" yaml:"status"`
}

// Clone returns a copy that does not share the image slice.
func (r Record) Clone() Record {
	out := r
	if r.Images != nil {
		out.Images = append([]string(nil), r.Images...)
	}
	return out
}

// CloneRecords copies a record set so callers cannot mutate the source.
func CloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, record := range records {
		out[i] = record.Clone()
	}
	return out
}

// ImageURL joins the static asset prefix and a stored image reference.
func ImageURL(prefix, ref string) string {
	ref = strings.TrimLeft(strings.TrimSpace(ref), "/")
	if ref == "" {
		return ""
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + ref
}
