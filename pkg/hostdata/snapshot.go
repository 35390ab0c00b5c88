// Package hostdata loads the records and security token the host page hands
// to the widget once at start-up.
package hostdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-gallery/pkg/csrf"
	"github.com/goliatone/go-gallery/pkg/model"
)

// Format selects the snapshot decoder.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Snapshot is the initial host data. Missing records decode as an empty list.
type Snapshot struct {
	Token   string         `json:"token" yaml:"token"`
	Records []model.Record `json:"records" yaml:"records"`
}

// CSRF returns the snapshot token as a csrf.Token.
func (s Snapshot) CSRF() csrf.Token {
	return csrf.New(s.Token)
}

// Decode parses raw snapshot bytes. FormatAuto sniffs JSON by its leading
// brace and falls back to YAML.
func Decode(raw []byte, format Format) (Snapshot, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Snapshot{}, ErrEmptySnapshot
	}
	if format == FormatAuto {
		format = FormatYAML
		if trimmed[0] == '{' {
			format = FormatJSON
		}
	}

	var snap Snapshot
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(trimmed, &snap); err != nil {
			return Snapshot{}, fmt.Errorf("hostdata: decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(trimmed, &snap); err != nil {
			return Snapshot{}, fmt.Errorf("hostdata: decode yaml: %w", err)
		}
	default:
		return Snapshot{}, fmt.Errorf("hostdata: unsupported format %q", format)
	}

	if snap.Records == nil {
		snap.Records = []model.Record{}
	}
	seen := make(map[int64]struct{}, len(snap.Records))
	for _, record := range snap.Records {
		if _, dup := seen[record.ID]; dup {
			return Snapshot{}, fmt.Errorf("%w: %d", ErrDuplicateID, record.ID)
		}
		seen[record.ID] = struct{}{}
	}
	return snap, nil
}

// FormatFor infers the format from a file extension.
func FormatFor(location string) Format {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}
