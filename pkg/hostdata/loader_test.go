package hostdata_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-gallery/pkg/hostdata"
	"github.com/goliatone/go-gallery/pkg/model"
	"github.com/goliatone/go-gallery/pkg/testsupport"
)

const jsonSnapshot = `{
  "token": "abc",
  "records": [
    {"id": 1, "title": "Beach", "description": "Sand", "images": ["a.png"], "status": 1},
    {"id": 2, "title": "Hills", "images": null, "status": "0"},
    {"id": 3, "title": "Lake", "status": true}
  ]
}`

const yamlSnapshot = `
token: abc
records:
  - id: 1
    title: Beach
    description: Sand
    images: [a.png]
    status: 1
  - id: 2
    title: Hills
    status: 0
  - id: 3
    title: Lake
    status: true
`

func wantRecords() []model.Record {
	return []model.Record{
		{ID: 1, Title: "Beach", Description: "Sand", Images: []string{"a.png"}, Status: model.StatusActive},
		{ID: 2, Title: "Hills", Status: model.StatusInactive},
		{ID: 3, Title: "Lake", Status: model.StatusActive},
	}
}

func TestDecode_Formats(t *testing.T) {
	for name, raw := range map[string]string{"json": jsonSnapshot, "yaml": yamlSnapshot} {
		t.Run(name, func(t *testing.T) {
			snap, err := hostdata.Decode([]byte(raw), hostdata.FormatAuto)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if snap.CSRF().Value() != "abc" {
				t.Fatalf("unexpected token %q", snap.Token)
			}
			if diff := cmp.Diff(wantRecords(), snap.Records); diff != "" {
				t.Fatalf("records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, err := hostdata.Decode([]byte("  \n"), hostdata.FormatAuto); !errors.Is(err, hostdata.ErrEmptySnapshot) {
		t.Fatalf("expected ErrEmptySnapshot, got %v", err)
	}
	dup := `{"records":[{"id":1},{"id":1}]}`
	if _, err := hostdata.Decode([]byte(dup), hostdata.FormatJSON); !errors.Is(err, hostdata.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if _, err := hostdata.Decode([]byte(`{"records": [`), hostdata.FormatJSON); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDecode_MissingRecords(t *testing.T) {
	snap, err := hostdata.Decode([]byte("token: x\n"), hostdata.FormatYAML)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Records == nil || len(snap.Records) != 0 {
		t.Fatalf("expected empty records, got %#v", snap.Records)
	}
}

func TestLoader_File(t *testing.T) {
	path := testsupport.WriteFile(t, t.TempDir(), "snapshot.yaml", []byte(yamlSnapshot))
	src, err := hostdata.Parse(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if src.Kind() != hostdata.SourceKindFile {
		t.Fatalf("expected file source, got %s", src.Kind())
	}
	snap, err := hostdata.NewLoader().Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(snap.Records))
	}
}

func TestLoader_FS(t *testing.T) {
	files := fstest.MapFS{"data/gallery.json": {Data: []byte(jsonSnapshot)}}
	loader := hostdata.NewLoader(hostdata.WithFileSystem(files))

	snap, err := loader.Load(context.Background(), hostdata.FromFS("data/gallery.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(wantRecords(), snap.Records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}

	if _, err := hostdata.NewLoader().Load(context.Background(), hostdata.FromFS("x.json")); !errors.Is(err, hostdata.ErrNoFileSystem) {
		t.Fatalf("expected ErrNoFileSystem, got %v", err)
	}
}

func TestLoader_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(jsonSnapshot))
	}))
	defer srv.Close()

	src, err := hostdata.Parse(srv.URL + "/gallery")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if src.Kind() != hostdata.SourceKindURL {
		t.Fatalf("expected url source, got %s", src.Kind())
	}

	if _, err := hostdata.NewLoader().Load(context.Background(), src); !errors.Is(err, hostdata.ErrHTTPDisabled) {
		t.Fatalf("expected ErrHTTPDisabled, got %v", err)
	}

	loader := hostdata.NewLoader(hostdata.WithHTTPFallback(5 * time.Second))
	snap, err := loader.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap.Token != "abc" || len(snap.Records) != 3 {
		t.Fatalf("unexpected snapshot %#v", snap)
	}

	missing, _ := hostdata.FromURL(srv.URL + "/missing")
	if _, err := loader.Load(context.Background(), missing); err == nil {
		t.Fatalf("expected status error")
	}
}

func TestFromURL_Invalid(t *testing.T) {
	if _, err := hostdata.FromURL("ftp://example.com/x"); err == nil {
		t.Fatalf("expected scheme error")
	}
	if _, err := hostdata.Parse(""); !errors.Is(err, hostdata.ErrNilSource) {
		t.Fatalf("expected ErrNilSource, got %v", err)
	}
}
