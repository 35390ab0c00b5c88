// Package testsupport holds fixtures and helpers shared by the package tests.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-gallery/pkg/csrf"
	"github.com/goliatone/go-gallery/pkg/model"
)

// Token is the security token used across fixtures.
const Token = "test-token"

// CSRF returns Token as a csrf.Token.
func CSRF() csrf.Token {
	return csrf.New(Token)
}

// Records returns a fresh copy of the sample gallery snapshot.
func Records() []model.Record {
	return []model.Record{
		{ID: 1, Title: "Beach Day", Description: "Sand and <b>sea</b>", Images: []string{"beach/1.jpg", "beach/2.jpg"}, Status: model.StatusActive},
		{ID: 2, Title: "Mountains", Description: "", Images: nil, Status: model.StatusInactive},
		{ID: 3, Title: "City Lights", Description: "Night skyline", Images: []string{"city.png"}, Status: model.StatusActive},
		{ID: 4, Title: "Forest", Description: "Tall trees", Images: []string{}, Status: model.StatusActive},
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// WriteFile writes data under dir and returns the full path.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
