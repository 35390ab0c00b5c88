package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func slotStrings(slots []ImageSlot) []string {
	out := make([]string, 0, len(slots))
	for _, slot := range slots {
		out = append(out, slot.String())
	}
	return out
}

func TestNewEditBuffer_AddModeDefaults(t *testing.T) {
	buf := NewEditBuffer(nil)

	if buf.Status != StatusActive {
		t.Fatalf("expected active default, got %v", buf.Status)
	}
	if diff := cmp.Diff([]string{"new:<empty>"}, slotStrings(buf.Images)); diff != "" {
		t.Fatalf("slots mismatch (-want +got):\n%s", diff)
	}
}

func TestNewEditBuffer_ExistingImagesInOrder(t *testing.T) {
	record := &Record{ID: 4, Title: "Trip", Images: []string{"a.png", "b.png"}, Status: StatusInactive}
	buf := NewEditBuffer(record)

	if len(buf.Images) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(buf.Images))
	}
	for i, want := range []string{"a.png", "b.png"} {
		slot := buf.Images[i]
		if slot.Kind() != SlotKindExisting || slot.Ref() != want {
			t.Fatalf("slot %d: got %s, want existing %q", i, slot, want)
		}
	}
	if buf.Title != "Trip" || buf.Status != StatusInactive {
		t.Fatalf("fields not copied: %#v", buf)
	}
}

func TestNewEditBuffer_AbsentImagesStartWithEmptySlot(t *testing.T) {
	buf := NewEditBuffer(&Record{ID: 1})
	if diff := cmp.Diff([]string{"new:<empty>"}, slotStrings(buf.Images)); diff != "" {
		t.Fatalf("slots mismatch (-want +got):\n%s", diff)
	}

	buf = NewEditBuffer(&Record{ID: 1, Images: []string{}})
	if len(buf.Images) != 0 {
		t.Fatalf("expected no slots for empty image list, got %v", slotStrings(buf.Images))
	}
}

func TestImageSlot_ZeroValueIsEmptyNew(t *testing.T) {
	var slot ImageSlot
	if slot.Kind() != SlotKindNew || !slot.IsEmpty() {
		t.Fatalf("zero slot should be empty new, got %s", slot)
	}
	if slot.Ref() != "" {
		t.Fatalf("new slot must not expose a ref")
	}
}

func TestNewUpload_DetectsContentType(t *testing.T) {
	upload, err := NewUpload("photos/cat.png", []byte("\x89PNG\r\n\x1a\n"))
	if err != nil {
		t.Fatalf("new upload: %v", err)
	}
	if upload.Name != "cat.png" {
		t.Fatalf("expected base name, got %q", upload.Name)
	}
	if upload.ContentType != "image/png" {
		t.Fatalf("expected image/png, got %q", upload.ContentType)
	}

	if _, err := NewUpload("  ", nil); err == nil {
		t.Fatalf("expected error for empty name")
	}
}
