package gallery_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	gallery "github.com/goliatone/go-gallery"
	"github.com/goliatone/go-gallery/pkg/testsupport"
)

func TestLoadSnapshotAndListHTML(t *testing.T) {
	path := testsupport.WriteFile(t, t.TempDir(), "snap.json", []byte(`{"token":"t1","records":[{"id":7,"title":"Harbor","status":1}]}`))
	snap, err := gallery.LoadSnapshot(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	out, err := gallery.ListHTML(context.Background(), snap, "", 1, gallery.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "Harbor") || !strings.Contains(html, `value="t1"`) || !strings.Contains(html, "Page 1 of 1") {
		t.Fatalf("unexpected html\n%s", html)
	}

	if _, err := gallery.ListHTML(context.Background(), snap, "", 3, gallery.RenderOptions{}); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestEmbeddedFS(t *testing.T) {
	if _, err := fs.Stat(gallery.EmbeddedTemplates(), "list.tmpl"); err != nil {
		t.Fatalf("list template missing: %v", err)
	}
	if _, err := fs.Stat(gallery.AssetsFS(), "gallery.css"); err != nil {
		t.Fatalf("stylesheet missing: %v", err)
	}
}
