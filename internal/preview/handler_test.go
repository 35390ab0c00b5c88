package preview

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-gallery/pkg/render"
	"github.com/goliatone/go-gallery/pkg/testsupport"
)

func newTestHandler(t *testing.T, fns ...OptionFn) http.Handler {
	t.Helper()
	base := []OptionFn{
		WithRecords(testsupport.Records()),
		WithToken(testsupport.CSRF()),
		WithRenderOptions(render.RenderOptions{ActionBase: "https://backend.test"}),
	}
	h, err := NewHandler(append(base, fns...)...)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return h
}

func get(t *testing.T, h http.Handler, target string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	body, _ := io.ReadAll(rec.Result().Body)
	return rec.Code, string(body)
}

func TestHandler_ListPages(t *testing.T) {
	h := newTestHandler(t)

	code, body := get(t, h, "/gallery")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	for _, want := range []string{"Page 1 of 2", `data-id="3"`, `action="https://backend.test/gallery/1/delete"`, `value="test-token"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in body\n%s", want, body)
		}
	}

	_, body = get(t, h, "/gallery?page=2")
	if !strings.Contains(body, "Page 2 of 2") || !strings.Contains(body, `data-id="4"`) {
		t.Fatalf("unexpected second page\n%s", body)
	}

	_, body = get(t, h, "/gallery?page=9")
	if !strings.Contains(body, "Page 1 of 2") {
		t.Fatalf("out of range page must stay on page 1\n%s", body)
	}
}

func TestHandler_Search(t *testing.T) {
	_, body := get(t, newTestHandler(t), "/gallery?q=CITY&page=2")
	if !strings.Contains(body, `data-id="3"`) || strings.Contains(body, `data-id="1"`) {
		t.Fatalf("unexpected search result\n%s", body)
	}
	if !strings.Contains(body, "Page 1 of 1") {
		t.Fatalf("search result must fit on one page\n%s", body)
	}
}

func TestHandler_Forms(t *testing.T) {
	h := newTestHandler(t)

	code, body := get(t, h, "/gallery?view=add")
	if code != http.StatusOK || !strings.Contains(body, "Create Gallery") || !strings.Contains(body, `action="https://backend.test/gallery/store"`) {
		t.Fatalf("unexpected add form (%d)\n%s", code, body)
	}

	code, body = get(t, h, "/gallery?view=edit&id=1")
	if code != http.StatusOK || !strings.Contains(body, "Edit Gallery") || !strings.Contains(body, `value="Beach Day"`) {
		t.Fatalf("unexpected edit form (%d)\n%s", code, body)
	}

	if code, _ = get(t, h, "/gallery?view=edit&id=99"); code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", code)
	}
	if code, _ = get(t, h, "/gallery?view=edit&id=abc"); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", code)
	}
	if code, _ = get(t, h, "/gallery?view=other"); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown view, got %d", code)
	}
}

func TestHandler_MethodAndHead(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/gallery", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed || rec.Header().Get("Allow") == "" {
		t.Fatalf("expected 405 with Allow header, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodHead, "/gallery", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 200 for HEAD, got %d (%d bytes)", rec.Code, rec.Body.Len())
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
}

func TestHandler_Guard(t *testing.T) {
	h := newTestHandler(t, WithGuard(func(*http.Request) error {
		return StatusError{Code: http.StatusUnauthorized, Err: errors.New("nope")}
	}))
	if code, _ := get(t, h, "/gallery"); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}

	h = newTestHandler(t, WithGuard(func(*http.Request) error { return errors.New("denied") }))
	if code, _ := get(t, h, "/gallery"); code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestHandler_SnapshotIsNotShared(t *testing.T) {
	records := testsupport.Records()
	h := newTestHandler(t, WithRecords(records))
	records[0].Title = "Changed"

	_, body := get(t, h, "/gallery")
	if !strings.Contains(body, "Beach Day") {
		t.Fatalf("handler must keep its own copy of the snapshot\n%s", body)
	}
}
