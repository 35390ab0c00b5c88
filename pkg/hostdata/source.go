package hostdata

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// SourceKind enumerates where a snapshot can be read from.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source identifies a snapshot location.
type Source interface {
	Kind() SourceKind
	Location() string
}

type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }
func (s source) Location() string { return s.location }

// FromFile points at a snapshot on disk.
func FromFile(path string) Source {
	return source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// FromFS points at a snapshot inside the loader's fs.FS.
func FromFS(name string) Source {
	return source{kind: SourceKindFS, location: name}
}

// FromURL points at a snapshot served over HTTP.
func FromURL(raw string) (Source, error) {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, fmt.Errorf("hostdata: invalid url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("hostdata: unsupported url scheme %q", u.Scheme)
	}
	return source{kind: SourceKindURL, location: raw}, nil
}

// Parse picks a source kind from a location string: http(s) URLs become URL
// sources and everything else is read from disk.
func Parse(location string) (Source, error) {
	if u, err := url.Parse(location); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return FromURL(location)
	}
	if location == "" {
		return nil, ErrNilSource
	}
	return FromFile(location), nil
}
