package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-gallery/pkg/form"
	"github.com/goliatone/go-gallery/pkg/listing"
	"github.com/goliatone/go-gallery/pkg/model"
	"github.com/goliatone/go-gallery/pkg/testsupport"
)

// stubDriver answers Select prompts by option label so scripts stay readable
// when menus change shape.
type stubDriver struct {
	selects      []string
	inputs       []string
	confirm      []bool
	textAreas    []string
	infoMessages []string
	menus        [][]string
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if len(s.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[0]
	s.inputs = s.inputs[1:]
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if len(s.confirm) == 0 {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[0]
	s.confirm = s.confirm[1:]
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.menus = append(s.menus, append([]string(nil), cfg.Options...))
	if len(s.selects) == 0 {
		return -1, errors.New("no select scripted")
	}
	want := s.selects[0]
	s.selects = s.selects[1:]
	for i, option := range cfg.Options {
		if strings.HasPrefix(option, want) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("option %q not offered in %v", want, cfg.Options)
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if len(s.textAreas) == 0 {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[0]
	s.textAreas = s.textAreas[1:]
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) lastInfo() string {
	if len(s.infoMessages) == 0 {
		return ""
	}
	return s.infoMessages[len(s.infoMessages)-1]
}

type recordingSubmitter struct {
	subs []form.Submission
	err  error
}

func (r *recordingSubmitter) Submit(_ context.Context, sub form.Submission) (form.SubmitResult, error) {
	r.subs = append(r.subs, sub)
	if r.err != nil {
		return form.SubmitResult{}, r.err
	}
	return form.SubmitResult{StatusCode: 302, Location: "/gallery"}, nil
}

type stubDeleter struct {
	mu    sync.Mutex
	calls []int64
	err   error
}

func (s *stubDeleter) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, id)
	return s.err
}

func newSession(t *testing.T, driver *stubDriver, list *listing.Controller, opts ...Option) *Session {
	t.Helper()
	s, err := NewSession(list, append([]Option{WithPromptDriver(driver)}, opts...)...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestSession_PagingAndQuit(t *testing.T) {
	driver := &stubDriver{selects: []string{ActionNext, ActionQuit}}
	list := listing.New(testsupport.Records(), testsupport.CSRF())

	if err := newSession(t, driver, list).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if list.CurrentPage() != 2 {
		t.Fatalf("expected page 2, got %d", list.CurrentPage())
	}
	if !strings.Contains(driver.lastInfo(), "Page 2 of 2") || !strings.Contains(driver.lastInfo(), "Forest") {
		t.Fatalf("unexpected last screen:\n%s", driver.lastInfo())
	}
	want := []string{ActionSearch, ActionPrev, ActionAdd, ActionEdit, ActionDelete, ActionQuit}
	if diff := cmp.Diff(want, driver.menus[1]); diff != "" {
		t.Fatalf("last page menu mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_SearchResetsPage(t *testing.T) {
	driver := &stubDriver{
		selects: []string{ActionNext, ActionSearch, ActionQuit},
		inputs:  []string{"  city "},
	}
	list := listing.New(testsupport.Records(), testsupport.CSRF())

	if err := newSession(t, driver, list).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if list.SearchTerm() != "city" || list.CurrentPage() != 1 {
		t.Fatalf("unexpected state search=%q page=%d", list.SearchTerm(), list.CurrentPage())
	}
	for _, option := range driver.menus[len(driver.menus)-1] {
		if option == ActionNext || option == ActionPrev {
			t.Fatalf("single page result must not offer paging: %v", driver.menus[len(driver.menus)-1])
		}
	}
}

func TestSession_DeleteConfirmed(t *testing.T) {
	deleter := &stubDeleter{err: errors.New("backend down")}
	driver := &stubDriver{
		selects: []string{ActionDelete, "#3", ActionQuit},
		confirm: []bool{true},
	}
	list := listing.New(testsupport.Records(), testsupport.CSRF(), listing.WithDeleter(deleter))

	if err := newSession(t, driver, list).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, ok := list.Find(3); ok {
		t.Fatalf("record 3 must be removed")
	}
	if !strings.Contains(driver.lastInfo(), "delete #3 failed") {
		t.Fatalf("delete failure must be reported, got %q", driver.lastInfo())
	}
}

func TestSession_DeleteDeclined(t *testing.T) {
	deleter := &stubDeleter{}
	driver := &stubDriver{
		selects: []string{ActionDelete, "#1", ActionQuit},
		confirm: []bool{false},
	}
	list := listing.New(testsupport.Records(), testsupport.CSRF(), listing.WithDeleter(deleter))

	if err := newSession(t, driver, list).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(list.Records()) != 4 || len(deleter.calls) != 0 {
		t.Fatalf("declined delete must not change anything")
	}
}

func TestSession_EditAndSubmit(t *testing.T) {
	submitter := &recordingSubmitter{}
	driver := &stubDriver{
		selects: []string{
			ActionEdit, "#1",
			ActionTitle,
			ActionRemove, "1.",
			ActionAddSlot,
			ActionSetFile, "2.",
			ActionStatus,
			"Update",
			ActionQuit,
		},
		inputs: []string{"Beach Night", "/tmp/c.jpg"},
	}
	list := listing.New(testsupport.Records(), testsupport.CSRF())
	reader := func(path string) (*model.Upload, error) {
		return model.NewUpload(path, []byte("jpeg"))
	}

	s := newSession(t, driver, list, WithSubmitter(submitter), WithUploadReader(reader))
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(submitter.subs) != 1 {
		t.Fatalf("expected one submission, got %d", len(submitter.subs))
	}
	sub := submitter.subs[0]
	if sub.Action != "/gallery/1/update" {
		t.Fatalf("unexpected action %q", sub.Action)
	}
	values := sub.Values()
	if values.Get("title") != "Beach Night" || values.Get("status") != "0" {
		t.Fatalf("unexpected values %v", values)
	}
	if diff := cmp.Diff([]string{"beach/2.jpg"}, values["existing_images[]"]); diff != "" {
		t.Fatalf("existing images mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c.jpg"}, sub.FileNames()); diff != "" {
		t.Fatalf("uploads mismatch (-want +got):\n%s", diff)
	}
	if _, ok := list.View().(listing.Listing); !ok {
		t.Fatalf("session must return to the list after submit")
	}
	if rec, _ := list.Find(1); rec.Title != "Beach Day" {
		t.Fatalf("local list must not change on submit")
	}
}

func TestSession_AddWithoutSubmitter(t *testing.T) {
	driver := &stubDriver{selects: []string{ActionAdd, "Save", ActionQuit}}
	list := listing.New(testsupport.Records(), testsupport.CSRF())

	if err := newSession(t, driver, list).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	found := false
	for _, msg := range driver.infoMessages {
		if strings.Contains(msg, noSubmitNotice) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected notice about missing backend, got %v", driver.infoMessages)
	}
}

func TestSession_BackKeepsListState(t *testing.T) {
	driver := &stubDriver{selects: []string{ActionNext, ActionAdd, ActionBack, ActionQuit}}
	list := listing.New(testsupport.Records(), testsupport.CSRF())

	if err := newSession(t, driver, list).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if list.CurrentPage() != 2 {
		t.Fatalf("back must keep page, got %d", list.CurrentPage())
	}
}

func TestSession_DriverAbort(t *testing.T) {
	driver := &stubDriver{}
	list := listing.New(testsupport.Records(), testsupport.CSRF())
	err := newSession(t, driver, list).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "no select scripted") {
		t.Fatalf("expected driver error, got %v", err)
	}
}

func TestSession_DeleteWithoutBackend(t *testing.T) {
	driver := &stubDriver{selects: []string{ActionDelete, "#1", ActionQuit}}
	list := listing.New(testsupport.Records(), testsupport.CSRF())

	if err := newSession(t, driver, list).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(list.Records()) != 4 {
		t.Fatalf("records must be untouched without a backend")
	}
	found := false
	for _, msg := range driver.infoMessages {
		if strings.Contains(msg, "delete not sent") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected notice, got %v", driver.infoMessages)
	}
}
