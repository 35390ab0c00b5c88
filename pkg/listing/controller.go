package listing

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-gallery/pkg/csrf"
	"github.com/goliatone/go-gallery/pkg/form"
	"github.com/goliatone/go-gallery/pkg/model"
)

// DeleteConfirmation is the question asked before a delete proceeds.
const DeleteConfirmation = "Are you sure to delete?"

// Deleter sends the delete request for a record to the backend.
type Deleter interface {
	Delete(ctx context.Context, id int64) error
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, message string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, message string) (bool, error) {
	return f(ctx, message)
}

// DeleteResult is the outcome of a delete request. A failed request does not
// restore the record locally.
type DeleteResult struct {
	ID  int64
	Err error
}

// Deletion describes a Delete call. Done is nil when the user declined;
// otherwise it yields exactly one result.
type Deletion struct {
	Confirmed bool
	Done      <-chan DeleteResult
}

// Option configures a Controller.
type Option func(*Controller)

// WithPageSize overrides the rows per page; values below one are ignored.
func WithPageSize(size int) Option {
	return func(c *Controller) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithDeleter wires the backend used by Delete.
func WithDeleter(deleter Deleter) Option {
	return func(c *Controller) {
		c.deleter = deleter
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

// WithFormOptions forwards options to every form controller the list opens.
func WithFormOptions(options ...form.Option) Option {
	return func(c *Controller) {
		c.formOptions = append(c.formOptions, options...)
	}
}

// Controller is the root of the widget.
type Controller struct {
	records     []model.Record
	search      string
	page        int
	pageSize    int
	view        View
	token       csrf.Token
	deleter     Deleter
	formOptions []form.Option
	logger      *slog.Logger
}

// New mounts the controller over a snapshot of the host's records.
func New(records []model.Record, token csrf.Token, options ...Option) *Controller {
	c := &Controller{
		records:  model.CloneRecords(records),
		page:     1,
		pageSize: DefaultPageSize,
		view:     Listing{},
		token:    token,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if c.records == nil {
		c.records = []model.Record{}
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Records returns a copy of the local record set.
func (c *Controller) Records() []model.Record {
	return model.CloneRecords(c.records)
}

// SearchTerm returns the current filter text.
func (c *Controller) SearchTerm() string {
	return c.search
}

// CurrentPage returns the 1-based page number.
func (c *Controller) CurrentPage() int {
	return c.page
}

// PageSize returns the rows per page.
func (c *Controller) PageSize() int {
	return c.pageSize
}

// View returns the active screen.
func (c *Controller) View() View {
	return c.view
}

// SetSearch replaces the filter text and returns to the first page.
func (c *Controller) SetSearch(term string) {
	c.search = term
	c.page = 1
}

// Matches returns every record matching the current search term.
func (c *Controller) Matches() []model.Record {
	return Filter(c.records, c.search)
}

// Page projects the current page.
func (c *Controller) Page() PageView {
	matches := c.Matches()
	total := PageCount(len(matches), c.pageSize)
	return PageView{
		Records:      Paginate(matches, c.page, c.pageSize),
		SearchTerm:   c.search,
		Page:         c.page,
		PageSize:     c.pageSize,
		TotalPages:   total,
		TotalMatches: len(matches),
		PrevDisabled: c.page <= 1,
		NextDisabled: c.page >= total,
	}
}

// NextPage advances one page unless the next control is disabled.
func (c *Controller) NextPage() bool {
	if c.Page().NextDisabled {
		return false
	}
	c.page++
	return true
}

// PrevPage goes back one page unless the previous control is disabled.
func (c *Controller) PrevPage() bool {
	if c.page <= 1 {
		return false
	}
	c.page--
	return true
}

// GoToPage jumps to page when it lies within 1..max(1, total pages).
func (c *Controller) GoToPage(page int) bool {
	last := PageCount(len(c.Matches()), c.pageSize)
	if last < 1 {
		last = 1
	}
	if page < 1 || page > last {
		return false
	}
	c.page = page
	return true
}

func (c *Controller) clampPage() {
	last := PageCount(len(c.Matches()), c.pageSize)
	if last < 1 {
		last = 1
	}
	if c.page > last {
		c.page = last
	}
	if c.page < 1 {
		c.page = 1
	}
}

// Find returns the local record with id.
func (c *Controller) Find(id int64) (model.Record, bool) {
	for _, record := range c.records {
		if record.ID == id {
			return record.Clone(), true
		}
	}
	return model.Record{}, false
}

// Add swaps to a fresh create form.
func (c *Controller) Add() (*form.Controller, error) {
	if _, ok := c.view.(Listing); !ok {
		return nil, fmt.Errorf("%w: currently %s", ErrNotListing, c.view.Name())
	}
	fc := form.NewCreate(c.token, c.formOptions...)
	c.view = Adding{Form: fc}
	c.logger.Debug("gallery view changed", "view", c.view.Name())
	return fc, nil
}

// Edit swaps to a fresh edit form for the record with id.
func (c *Controller) Edit(id int64) (*form.Controller, error) {
	if _, ok := c.view.(Listing); !ok {
		return nil, fmt.Errorf("%w: currently %s", ErrNotListing, c.view.Name())
	}
	record, ok := c.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrRecordNotFound, id)
	}
	fc := form.NewEdit(record, c.token, c.formOptions...)
	c.view = Editing{Record: record, Form: fc}
	c.logger.Debug("gallery view changed", "view", c.view.Name(), "id", id)
	return fc, nil
}

// Back discards the active form and returns to the list with the previous
// search term and page.
func (c *Controller) Back() {
	if _, ok := c.view.(Listing); ok {
		return
	}
	c.view = Listing{}
	c.logger.Debug("gallery view changed", "view", c.view.Name())
}

// Delete asks confirm, then removes id from the local set immediately and
// sends the delete request in the background. The removal is not reverted
// when the request fails, and repeated deletes of the same id are not
// coalesced.
func (c *Controller) Delete(ctx context.Context, id int64, confirm Confirmer) (Deletion, error) {
	if _, ok := c.view.(Listing); !ok {
		return Deletion{}, fmt.Errorf("%w: currently %s", ErrNotListing, c.view.Name())
	}
	if c.deleter == nil {
		return Deletion{}, ErrNoDeleter
	}
	if confirm == nil {
		return Deletion{}, fmt.Errorf("listing: confirmer is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ok, err := confirm.Confirm(ctx, DeleteConfirmation)
	if err != nil {
		return Deletion{}, fmt.Errorf("listing: confirm delete: %w", err)
	}
	if !ok {
		c.logger.Debug("gallery delete declined", "id", id)
		return Deletion{}, nil
	}

	c.remove(id)
	c.clampPage()

	done := make(chan DeleteResult, 1)
	deleter := c.deleter
	logger := c.logger
	go func() {
		err := deleter.Delete(ctx, id)
		if err != nil {
			logger.Warn("gallery delete request failed; local removal kept", "id", id, "err", err)
		} else {
			logger.Info("gallery record deleted", "id", id)
		}
		done <- DeleteResult{ID: id, Err: err}
		close(done)
	}()

	return Deletion{Confirmed: true, Done: done}, nil
}

func (c *Controller) remove(id int64) {
	kept := make([]model.Record, 0, len(c.records))
	for _, record := range c.records {
		if record.ID == id {
			continue
		}
		kept = append(kept, record)
	}
	if len(kept) == len(c.records) {
		c.logger.Debug("gallery delete for id not in local set", "id", id)
	}
	c.records = kept
}
