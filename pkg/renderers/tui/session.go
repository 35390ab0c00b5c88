// Package tui drives the gallery widget from a terminal using survey prompts.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goliatone/go-gallery/pkg/form"
	"github.com/goliatone/go-gallery/pkg/listing"
	"github.com/goliatone/go-gallery/pkg/model"
	"github.com/goliatone/go-gallery/pkg/render"
	"github.com/goliatone/go-gallery/pkg/renderers/text"
)

// Menu entries. Tests and scripted drivers select by these labels.
const (
	ActionSearch   = "Search"
	ActionNext     = "Next page"
	ActionPrev     = "Previous page"
	ActionAdd      = "Add gallery"
	ActionEdit     = "Edit gallery"
	ActionDelete   = "Delete gallery"
	ActionQuit     = "Quit"
	ActionTitle    = "Edit title"
	ActionDesc     = "Edit description"
	ActionStatus   = "Toggle status"
	ActionAddSlot  = "Add image slot"
	ActionSetFile  = "Choose image file"
	ActionRemove   = "Remove image slot"
	ActionBack     = "Back"
	cancelLabel    = "Cancel"
	noSubmitNotice = "no backend configured; form not sent"
)

// Session is an interactive loop over a listing controller.
type Session struct {
	list       *listing.Controller
	driver     PromptDriver
	submitter  form.Submitter
	renderer   render.Renderer
	renderOpts render.RenderOptions
	readUpload UploadReader
	logger     *slog.Logger
	theme      Theme
	pending    []listing.Deletion
}

// NewSession binds a session to list. The list controller must carry a
// deleter for delete actions to work.
func NewSession(list *listing.Controller, options ...Option) (*Session, error) {
	if list == nil {
		return nil, errors.New("tui: listing controller is required")
	}
	s := &Session{
		list:       list,
		renderer:   text.New(),
		readUpload: model.UploadFromFile,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s, nil
}

// Run loops until the user quits or aborts. Pending delete requests are
// awaited before returning.
func (s *Session) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.awaitDeletes(ctx)

	for {
		s.reportDeletes(ctx, false)
		if err := ctx.Err(); err != nil {
			return err
		}

		page := s.list.Page()
		if err := s.show(ctx, func() ([]byte, error) {
			return s.renderer.RenderList(ctx, page, s.renderOpts)
		}); err != nil {
			return err
		}

		options := s.listActions(page)
		idx, err := s.driver.Select(ctx, SelectConfig{Message: s.renderOpts.Label(render.KeyListHeading), Options: options})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			continue
		}

		switch options[idx] {
		case ActionQuit:
			return nil
		case ActionNext:
			s.list.NextPage()
		case ActionPrev:
			s.list.PrevPage()
		case ActionSearch:
			term, err := s.driver.Input(ctx, InputConfig{Message: ActionSearch, Default: s.list.SearchTerm()})
			if err != nil {
				return err
			}
			s.list.SetSearch(strings.TrimSpace(term))
		case ActionAdd:
			fc, err := s.list.Add()
			if err != nil {
				return err
			}
			if err := s.runForm(ctx, fc); err != nil {
				return err
			}
		case ActionEdit:
			id, ok, err := s.pickRecord(ctx, page, ActionEdit)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			fc, err := s.list.Edit(id)
			if err != nil {
				return err
			}
			if err := s.runForm(ctx, fc); err != nil {
				return err
			}
		case ActionDelete:
			id, ok, err := s.pickRecord(ctx, page, ActionDelete)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := s.delete(ctx, id); err != nil {
				return err
			}
		}
	}
}

func (s *Session) listActions(page listing.PageView) []string {
	options := []string{ActionSearch}
	if !page.NextDisabled {
		options = append(options, ActionNext)
	}
	if !page.PrevDisabled {
		options = append(options, ActionPrev)
	}
	options = append(options, ActionAdd)
	if !page.Empty() {
		options = append(options, ActionEdit, ActionDelete)
	}
	return append(options, ActionQuit)
}

func (s *Session) pickRecord(ctx context.Context, page listing.PageView, message string) (int64, bool, error) {
	options := make([]string, 0, len(page.Records)+1)
	for _, record := range page.Records {
		options = append(options, fmt.Sprintf("#%d %s", record.ID, record.Title))
	}
	options = append(options, cancelLabel)

	idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: options})
	if err != nil {
		return 0, false, err
	}
	if idx < 0 || idx >= len(page.Records) {
		return 0, false, nil
	}
	return page.Records[idx].ID, true, nil
}

func (s *Session) delete(ctx context.Context, id int64) error {
	confirm := listing.ConfirmFunc(func(ctx context.Context, message string) (bool, error) {
		return s.driver.Confirm(ctx, ConfirmConfig{Message: s.renderOpts.Label(render.KeyConfirm)})
	})
	deletion, err := s.list.Delete(ctx, id, confirm)
	if errors.Is(err, listing.ErrNoDeleter) {
		s.notify(ctx, true, "no backend configured; delete not sent")
		return nil
	}
	if err != nil {
		return err
	}
	if deletion.Confirmed {
		s.pending = append(s.pending, deletion)
	}
	return nil
}

// reportDeletes surfaces finished delete requests. With wait set it blocks
// until every pending request has reported or ctx ends.
func (s *Session) reportDeletes(ctx context.Context, wait bool) {
	kept := s.pending[:0]
	for _, deletion := range s.pending {
		var (
			result listing.DeleteResult
			done   bool
		)
		if wait {
			select {
			case result = <-deletion.Done:
				done = true
			case <-ctx.Done():
			}
		} else {
			select {
			case result = <-deletion.Done:
				done = true
			default:
			}
		}
		if !done {
			kept = append(kept, deletion)
			continue
		}
		if result.Err != nil {
			s.notify(ctx, true, fmt.Sprintf("delete #%d failed: %v", result.ID, result.Err))
		}
	}
	s.pending = kept
}

func (s *Session) awaitDeletes(ctx context.Context) {
	if len(s.pending) == 0 {
		return
	}
	if ctx.Err() != nil {
		ctx = context.Background()
	}
	s.reportDeletes(ctx, true)
}

func (s *Session) runForm(ctx context.Context, fc *form.Controller) error {
	defer s.list.Back()

	opts := s.renderOpts
	opts.Search = s.list.SearchTerm()
	opts.Page = s.list.CurrentPage()

	submitLabel := opts.Label(render.KeySave)
	if fc.Mode() == form.ModeEdit {
		submitLabel = opts.Label(render.KeyUpdate)
	}

	for {
		view := fc.View()
		if err := s.show(ctx, func() ([]byte, error) {
			return s.renderer.RenderForm(ctx, view, opts)
		}); err != nil {
			return err
		}

		options := []string{ActionTitle, ActionDesc, ActionStatus, ActionAddSlot}
		if len(view.Slots) > 0 {
			options = append(options, ActionSetFile, ActionRemove)
		}
		options = append(options, submitLabel, ActionBack)

		heading := opts.Label(render.KeyCreateTitle)
		if fc.Mode() == form.ModeEdit {
			heading = opts.Label(render.KeyEditTitle)
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: heading, Options: options})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			continue
		}

		switch options[idx] {
		case ActionBack:
			return nil
		case submitLabel:
			return s.submit(ctx, fc)
		case ActionTitle:
			title, err := s.driver.Input(ctx, InputConfig{Message: opts.Label(render.KeyColumnTitle), Default: view.Title})
			if err != nil {
				return err
			}
			fc.SetTitle(title)
		case ActionDesc:
			desc, err := s.driver.TextArea(ctx, TextAreaConfig{Message: opts.Label(render.KeyColumnDesc), Default: view.Description})
			if err != nil {
				return err
			}
			fc.SetDescription(desc)
		case ActionStatus:
			if fc.Buffer().Status.Active() {
				fc.SetStatus(model.StatusInactive)
			} else {
				fc.SetStatus(model.StatusActive)
			}
		case ActionAddSlot:
			fc.AddImageSlot()
		case ActionSetFile:
			slot, ok, err := s.pickSlot(ctx, view, ActionSetFile)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			path, err := s.driver.Input(ctx, InputConfig{Message: "Image path"})
			if err != nil {
				return err
			}
			upload, err := s.readUpload(strings.TrimSpace(path))
			if err != nil {
				s.notify(ctx, true, err.Error())
				continue
			}
			if err := fc.SetNewFile(slot, upload); err != nil {
				return err
			}
		case ActionRemove:
			slot, ok, err := s.pickSlot(ctx, view, ActionRemove)
			if err != nil {
				return err
			}
			if ok {
				if err := fc.RemoveImageSlot(slot); err != nil {
					return err
				}
			}
		}
	}
}

func (s *Session) pickSlot(ctx context.Context, view form.View, message string) (int, bool, error) {
	options := make([]string, 0, len(view.Slots)+1)
	for _, slot := range view.Slots {
		label := slot.Ref
		if slot.Kind == string(model.SlotKindNew) {
			label = "new"
			if slot.FileName != "" {
				label += ": " + slot.FileName
			}
		}
		options = append(options, strconv.Itoa(slot.Index+1)+". "+label)
	}
	options = append(options, cancelLabel)

	idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: options})
	if err != nil {
		return 0, false, err
	}
	if idx < 0 || idx >= len(view.Slots) {
		return 0, false, nil
	}
	return view.Slots[idx].Index, true, nil
}

func (s *Session) submit(ctx context.Context, fc *form.Controller) error {
	if s.submitter == nil {
		s.notify(ctx, true, noSubmitNotice)
		return nil
	}
	result, err := fc.Submit(ctx, s.submitter)
	if err != nil {
		s.notify(ctx, true, err.Error())
		return nil
	}
	msg := fmt.Sprintf("saved (HTTP %d)", result.StatusCode)
	if result.Location != "" {
		msg += " -> " + result.Location
	}
	s.notify(ctx, false, msg)
	return nil
}

func (s *Session) show(ctx context.Context, fn func() ([]byte, error)) error {
	out, err := fn()
	if err != nil {
		return err
	}
	return s.driver.Info(ctx, s.theme.InfoPrefix+strings.TrimRight(string(out), "\n"))
}

func (s *Session) notify(ctx context.Context, isErr bool, msg string) {
	prefix := s.theme.InfoPrefix
	if isErr {
		prefix = s.theme.ErrorPrefix
		s.logger.Warn("gallery session", "msg", msg)
	}
	if err := s.driver.Info(ctx, prefix+msg); err != nil {
		s.logger.Debug("gallery session info failed", "err", err)
	}
}
