package form

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-gallery/pkg/csrf"
	"github.com/goliatone/go-gallery/pkg/endpoints"
	"github.com/goliatone/go-gallery/pkg/model"
)

// Mode distinguishes create sessions from edit sessions.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Option configures a Controller.
type Option func(*Controller)

// WithContract overrides the endpoint contract used to resolve form actions.
func WithContract(contract *endpoints.Contract) Option {
	return func(c *Controller) {
		if contract != nil {
			c.contract = contract
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller owns the edit buffer of a single create or edit session.
type Controller struct {
	mode     Mode
	record   *model.Record
	buffer   model.EditBuffer
	token    csrf.Token
	contract *endpoints.Contract
	logger   *slog.Logger
}

// NewCreate starts an add-mode session.
func NewCreate(token csrf.Token, options ...Option) *Controller {
	return newController(ModeCreate, nil, token, options...)
}

// NewEdit starts an edit-mode session for record.
func NewEdit(record model.Record, token csrf.Token, options ...Option) *Controller {
	clone := record.Clone()
	return newController(ModeEdit, &clone, token, options...)
}

func newController(mode Mode, record *model.Record, token csrf.Token, options ...Option) *Controller {
	c := &Controller{
		mode:   mode,
		record: record,
		buffer: model.NewEditBuffer(record),
		token:  token,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Mode reports whether the session creates or edits a record.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Record returns a copy of the record being edited, or nil in create mode.
func (c *Controller) Record() *model.Record {
	if c.record == nil {
		return nil
	}
	clone := c.record.Clone()
	return &clone
}

// Heading is the title shown above the form.
func (c *Controller) Heading() string {
	if c.mode == ModeEdit {
		return "Edit Gallery"
	}
	return "Create Gallery"
}

// SubmitLabel is the caption of the submit control.
func (c *Controller) SubmitLabel() string {
	if c.mode == ModeEdit {
		return "Update"
	}
	return "Save"
}

// Buffer returns a copy of the current edit buffer.
func (c *Controller) Buffer() model.EditBuffer {
	out := c.buffer
	out.Images = append([]model.ImageSlot(nil), c.buffer.Images...)
	return out
}

func (c *Controller) SetTitle(title string) {
	c.buffer.Title = title
}

func (c *Controller) SetDescription(description string) {
	c.buffer.Description = description
}

func (c *Controller) SetStatus(status model.Status) {
	c.buffer.Status = status
}

// AddImageSlot appends one empty new slot.
func (c *Controller) AddImageSlot() {
	c.buffer.Images = append(c.buffer.Images, model.NewSlot(nil))
}

// RemoveImageSlot drops the slot at index. The list may become empty.
func (c *Controller) RemoveImageSlot(index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	images := make([]model.ImageSlot, 0, len(c.buffer.Images)-1)
	images = append(images, c.buffer.Images[:index]...)
	images = append(images, c.buffer.Images[index+1:]...)
	c.buffer.Images = images
	return nil
}

// SetNewFile replaces the slot at index with a new slot holding file. An
// existing reference overwritten this way is no longer submitted.
func (c *Controller) SetNewFile(index int, file *model.Upload) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	if prev := c.buffer.Images[index]; prev.Kind() == model.SlotKindExisting {
		c.logger.Debug("existing image replaced by upload", "index", index, "ref", prev.Ref())
	}
	c.buffer.Images[index] = model.NewSlot(file)
	return nil
}

func (c *Controller) checkIndex(index int) error {
	if index < 0 || index >= len(c.buffer.Images) {
		return fmt.Errorf("%w: %d (have %d)", ErrSlotIndex, index, len(c.buffer.Images))
	}
	return nil
}

// Submission builds the multipart post for the current buffer.
func (c *Controller) Submission() (Submission, error) {
	if c.token.IsZero() {
		return Submission{}, ErrMissingToken
	}
	action, err := c.action()
	if err != nil {
		return Submission{}, err
	}

	sub := Submission{
		Method: method,
		Action: action,
		Fields: []Field{
			{Name: csrf.FieldName, Value: c.token.Value()},
			{Name: FieldTitle, Value: c.buffer.Title},
			{Name: FieldDescription, Value: c.buffer.Description},
			{Name: FieldStatus, Value: c.buffer.Status.FormValue()},
		},
	}
	for _, slot := range c.buffer.Images {
		switch slot.Kind() {
		case model.SlotKindExisting:
			sub.Fields = append(sub.Fields, Field{Name: FieldExistingImages, Value: slot.Ref()})
		case model.SlotKindNew:
			if file := slot.File(); file != nil {
				sub.Files = append(sub.Files, FilePart{Name: FieldImages, Upload: file})
			}
		}
	}
	return sub, nil
}

// Action resolves the endpoint path the form posts to.
func (c *Controller) Action() (string, error) {
	return c.action()
}

func (c *Controller) action() (string, error) {
	contract := c.contract
	if contract == nil {
		var err error
		contract, err = endpoints.Default()
		if err != nil {
			return "", err
		}
	}
	if c.mode == ModeEdit && c.record != nil {
		endpoint, err := contract.Lookup(endpoints.OpUpdate)
		if err != nil {
			return "", err
		}
		return endpoint.ForID(c.record.ID)
	}
	endpoint, err := contract.Lookup(endpoints.OpStore)
	if err != nil {
		return "", err
	}
	return endpoint.Path, nil
}

// Submitter posts a submission to the backend.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) (SubmitResult, error)
}

// SubmitResult reports what the backend answered. The body is not consumed;
// following the redirect is left to the caller.
type SubmitResult struct {
	StatusCode int
	Location   string
}

// Submit encodes the buffer and hands it to submitter.
func (c *Controller) Submit(ctx context.Context, submitter Submitter) (SubmitResult, error) {
	if submitter == nil {
		return SubmitResult{}, ErrNoSubmitter
	}
	sub, err := c.Submission()
	if err != nil {
		return SubmitResult{}, err
	}
	c.logger.Info("submitting gallery form",
		"mode", c.mode,
		"action", sub.Action,
		"existing", len(sub.Values()[FieldExistingImages]),
		"uploads", len(sub.Files),
	)
	result, err := submitter.Submit(ctx, sub)
	if err != nil {
		c.logger.Error("gallery form submission failed", "action", sub.Action, "err", err)
		return result, err
	}
	return result, nil
}
