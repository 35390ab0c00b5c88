package main

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-gallery/pkg/form"
	"github.com/goliatone/go-gallery/pkg/model"
	"github.com/goliatone/go-gallery/pkg/testsupport"
)

const snapshotYAML = `
token: snap-token
records:
  - {id: 1, title: Beach Day, description: Sand, images: [beach/1.jpg, beach/2.jpg], status: 1}
  - {id: 2, title: Mountains, status: 0}
  - {id: 3, title: City Lights, images: [city.png], status: 1}
  - {id: 4, title: Forest, images: [], status: 1}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSnapshot(t *testing.T) string {
	t.Helper()
	return testsupport.WriteFile(t, t.TempDir(), "snapshot.yaml", []byte(snapshotYAML))
}

func TestListCommand_Text(t *testing.T) {
	out, err := run(t, "list", "--snapshot", writeSnapshot(t), "--page", "2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Forest") || !strings.Contains(out, "Page 2 of 2") || strings.Contains(out, "Beach Day") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestListCommand_VanillaToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.html")
	out, err := run(t, "list", "--snapshot", writeSnapshot(t), "-q", "city", "-r", "vanilla", "-o", path, "--base-url", "https://admin.test")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "List written to") {
		t.Fatalf("unexpected output %q", out)
	}
	html := readFile(t, path)
	for _, want := range []string{`data-id="3"`, `value="snap-token"`, `action="https://admin.test/gallery/3/delete"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in\n%s", want, html)
		}
	}
}

func TestListCommand_Errors(t *testing.T) {
	snap := writeSnapshot(t)
	if _, err := run(t, "list", "--snapshot", snap, "--page", "5"); err == nil {
		t.Fatalf("expected out of range error")
	}
	if _, err := run(t, "list", "--snapshot", snap, "-r", "pdf"); err == nil {
		t.Fatalf("expected unknown renderer error")
	}
}

type captured struct {
	path   string
	token  string
	fields map[string][]string
	files  []string
}

func backend(t *testing.T, got *captured) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.token = r.Header.Get("X-CSRF-TOKEN")
		if _, params, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && params["boundary"] != "" {
			mr := multipart.NewReader(r.Body, params["boundary"])
			got.fields = map[string][]string{}
			for {
				part, err := mr.NextPart()
				if err != nil {
					break
				}
				if part.FileName() != "" {
					got.files = append(got.files, part.FileName())
					continue
				}
				data, _ := io.ReadAll(part)
				got.fields[part.FormName()] = append(got.fields[part.FormName()], string(data))
			}
		}
		w.Header().Set("Location", "/gallery")
		w.WriteHeader(http.StatusFound)
	}))
}

func TestCreateCommand(t *testing.T) {
	var got captured
	srv := backend(t, &got)
	defer srv.Close()

	dir := t.TempDir()
	a := testsupport.WriteFile(t, dir, "a.jpg", []byte("jpeg"))
	b := testsupport.WriteFile(t, dir, "b.png", []byte("png"))

	out, err := run(t, "create", "--snapshot", writeSnapshot(t), "--base-url", srv.URL,
		"--title", "New", "--status", "inactive", "-f", a, "-f", b)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.Contains(out, "saved (HTTP 302) -> /gallery") {
		t.Fatalf("unexpected output %q", out)
	}
	if got.path != "/gallery/store" {
		t.Fatalf("unexpected path %q", got.path)
	}
	if got.fields["_token"][0] != "snap-token" || got.fields["title"][0] != "New" || got.fields["status"][0] != "0" {
		t.Fatalf("unexpected fields %v", got.fields)
	}
	if diff := cmp.Diff([]string{"a.jpg", "b.png"}, got.files); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateCommand(t *testing.T) {
	var got captured
	srv := backend(t, &got)
	defer srv.Close()

	_, err := run(t, "update", "1", "--snapshot", writeSnapshot(t), "--base-url", srv.URL,
		"--remove-image", "beach/1.jpg", "--token", "flag-token")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.path != "/gallery/1/update" {
		t.Fatalf("unexpected path %q", got.path)
	}
	if got.fields["title"][0] != "Beach Day" || got.fields["_token"][0] != "flag-token" {
		t.Fatalf("unexpected fields %v", got.fields)
	}
	if diff := cmp.Diff([]string{"beach/2.jpg"}, got.fields["existing_images[]"]); diff != "" {
		t.Fatalf("existing images mismatch (-want +got):\n%s", diff)
	}

	if _, err := run(t, "update", "9", "--snapshot", writeSnapshot(t), "--base-url", srv.URL); err == nil {
		t.Fatalf("expected unknown id error")
	}
	if _, err := run(t, "update", "1", "--snapshot", writeSnapshot(t), "--base-url", srv.URL, "--remove-image", "nope.jpg"); err == nil {
		t.Fatalf("expected unknown image error")
	}
}

func TestDeleteCommand(t *testing.T) {
	var got captured
	srv := backend(t, &got)
	defer srv.Close()

	out, err := run(t, "delete", "3", "-y", "--snapshot", writeSnapshot(t), "--base-url", srv.URL)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got.path != "/gallery/3/delete" || got.token != "snap-token" || !strings.Contains(out, "deleted #3") {
		t.Fatalf("unexpected request path=%q token=%q out=%q", got.path, got.token, out)
	}
}

func TestDeleteCommand_ReportsBackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	out, err := run(t, "delete", "2", "-y", "--snapshot", writeSnapshot(t), "--base-url", srv.URL)
	if err == nil {
		t.Fatalf("expected backend failure")
	}
	if strings.Contains(out, "deleted") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestDeleteConfirmer_Skip(t *testing.T) {
	ok, err := deleteConfirmer(io.Discard, true).Confirm(context.Background(), "ignored")
	if err != nil || !ok {
		t.Fatalf("expected skip to confirm, got %v (%v)", ok, err)
	}
}

func TestMutations_RequireBaseURL(t *testing.T) {
	if _, err := run(t, "create", "--snapshot", writeSnapshot(t), "--title", "x"); err == nil || !strings.Contains(err.Error(), "base URL") {
		t.Fatalf("expected base URL error, got %v", err)
	}
}

func TestAttachFiles_FillsEmptySlotFirst(t *testing.T) {
	fc := form.NewEdit(model.Record{ID: 2, Title: "Mountains"}, testsupport.CSRF())
	a, _ := model.NewUpload("a.jpg", []byte("a"))
	b, _ := model.NewUpload("b.jpg", []byte("b"))
	if err := attachFiles(fc, []*model.Upload{a, b}); err != nil {
		t.Fatalf("attach: %v", err)
	}
	slots := fc.View().Slots
	if len(slots) != 2 || slots[0].FileName != "a.jpg" || slots[1].FileName != "b.jpg" {
		t.Fatalf("unexpected slots %+v", slots)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestListCommand_Preact(t *testing.T) {
	out, err := run(t, "list", "--snapshot", writeSnapshot(t), "-r", "preact")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, `id="gallery-data"`) || !strings.Contains(out, `"title":"Beach Day"`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
