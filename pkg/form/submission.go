package form

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/goliatone/go-gallery/pkg/model"
)

// Field names understood by the backend.
const (
	FieldTitle          = "title"
	FieldDescription    = "description"
	FieldStatus         = "status"
	FieldImages         = "images[]"
	FieldExistingImages = "existing_images[]"
)

const method = "POST"

// Field is a single text part. Repeated names are allowed and keep their order.
type Field struct {
	Name  string
	Value string
}

// FilePart is a single file part.
type FilePart struct {
	Name   string
	Upload *model.Upload
}

// Submission is a fully resolved form post.
type Submission struct {
	Method string
	Action string
	Fields []Field
	Files  []FilePart
}

// Values groups the text fields by name, preserving repeat order.
func (s Submission) Values() url.Values {
	values := make(url.Values, len(s.Fields))
	for _, field := range s.Fields {
		values.Add(field.Name, field.Value)
	}
	return values
}

// FileNames lists uploaded file names in submission order.
func (s Submission) FileNames() []string {
	out := make([]string, 0, len(s.Files))
	for _, part := range s.Files {
		if part.Upload == nil {
			continue
		}
		out = append(out, part.Upload.Name)
	}
	return out
}

// Encode writes the submission as multipart/form-data and returns the content
// type carrying the boundary.
func (s Submission) Encode(w io.Writer) (string, error) {
	mw := multipart.NewWriter(w)

	for _, field := range s.Fields {
		if err := mw.WriteField(field.Name, field.Value); err != nil {
			return "", fmt.Errorf("form: write field %s: %w", field.Name, err)
		}
	}

	for _, part := range s.Files {
		if part.Upload == nil {
			continue
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(part.Name), escapeQuotes(part.Upload.Name)))
		contentType := part.Upload.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		pw, err := mw.CreatePart(header)
		if err != nil {
			return "", fmt.Errorf("form: create part %s: %w", part.Upload.Name, err)
		}
		if _, err := pw.Write(part.Upload.Data); err != nil {
			return "", fmt.Errorf("form: write part %s: %w", part.Upload.Name, err)
		}
	}

	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("form: close multipart writer: %w", err)
	}
	return mw.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
