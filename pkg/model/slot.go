package model

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SlotKind distinguishes persisted image references from pending uploads.
type SlotKind string

const (
	SlotKindExisting SlotKind = "existing"
	SlotKindNew      SlotKind = "new"
)

// Upload is a file chosen for a new image slot.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// NewUpload builds an upload from in-memory data, sniffing the content type
// when the extension does not resolve one.
func NewUpload(name string, data []byte) (*Upload, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, ErrEmptyUpload
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &Upload{
		Name:        name,
		ContentType: contentType,
		Data:        append([]byte(nil), data...),
	}, nil
}

// UploadFromFile reads a file from disk into an Upload.
func UploadFromFile(path string) (*Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: read upload: %w", err)
	}
	return NewUpload(path, data)
}

// ImageSlot is one entry in the repeated image input list. It is either an
// existing reference or a new slot that may hold a chosen file. The zero value
// is an empty new slot.
type ImageSlot struct {
	kind SlotKind
	ref  string
	file *Upload
}

// ExistingSlot wraps an already persisted image reference.
func ExistingSlot(ref string) ImageSlot {
	return ImageSlot{kind: SlotKindExisting, ref: ref}
}

// NewSlot wraps a pending upload; a nil file yields an empty slot.
func NewSlot(file *Upload) ImageSlot {
	return ImageSlot{kind: SlotKindNew, file: file}
}

// Kind reports the slot variant.
func (s ImageSlot) Kind() SlotKind {
	if s.kind == "" {
		return SlotKindNew
	}
	return s.kind
}

// Ref returns the stored reference of an existing slot.
func (s ImageSlot) Ref() string {
	if s.Kind() != SlotKindExisting {
		return ""
	}
	return s.ref
}

// File returns the chosen upload of a new slot.
func (s ImageSlot) File() *Upload {
	if s.Kind() != SlotKindNew {
		return nil
	}
	return s.file
}

// IsEmpty reports a new slot without a chosen file.
func (s ImageSlot) IsEmpty() bool {
	return s.Kind() == SlotKindNew && s.file == nil
}

func (s ImageSlot) String() string {
	switch {
	case s.Kind() == SlotKindExisting:
		return "existing:" + s.ref
	case s.file == nil:
		return "new:<empty>"
	default:
		return "new:" + s.file.Name
	}
}

// EditBuffer holds the transient field values of a create or edit session.
type EditBuffer struct {
	Title       string
	Description string
	Status      Status
	Images      []ImageSlot
}

// NewEditBuffer seeds a buffer from a record, or from add-mode defaults when
// record is nil: active status and a single empty new slot. A record whose
// image list is absent (nil, as opposed to empty) also starts with one empty
// new slot.
func NewEditBuffer(record *Record) EditBuffer {
	if record == nil {
		return EditBuffer{
			Status: StatusActive,
			Images: []ImageSlot{NewSlot(nil)},
		}
	}
	if record.Images == nil {
		return EditBuffer{
			Title:       record.Title,
			Description: record.Description,
			Status:      record.Status,
			Images:      []ImageSlot{NewSlot(nil)},
		}
	}
	images := make([]ImageSlot, 0, len(record.Images))
	for _, ref := range record.Images {
		images = append(images, ExistingSlot(ref))
	}
	return EditBuffer{
		Title:       record.Title,
		Description: record.Description,
		Status:      record.Status,
		Images:      images,
	}
}
