package listing

import (
	"github.com/goliatone/go-gallery/pkg/form"
	"github.com/goliatone/go-gallery/pkg/model"
)

// View is the active screen of the widget: exactly one of Listing, Adding,
// or Editing.
type View interface {
	Name() string
	isView()
}

// Listing shows the searchable table.
type Listing struct{}

// Adding shows the form for a new record.
type Adding struct {
	Form *form.Controller
}

// Editing shows the form for an existing record.
type Editing struct {
	Record model.Record
	Form   *form.Controller
}

func (Listing) Name() string { return "listing" }
func (Adding) Name() string  { return "adding" }
func (Editing) Name() string { return "editing" }

func (Listing) isView() {}
func (Adding) isView()  {}
func (Editing) isView() {}

// PageView is the render-ready projection of the list screen.
type PageView struct {
	Records      []model.Record `json:"records"`
	SearchTerm   string         `json:"search"`
	Page         int            `json:"page"`
	PageSize     int            `json:"page_size"`
	TotalPages   int            `json:"total_pages"`
	TotalMatches int            `json:"total_matches"`
	PrevDisabled bool           `json:"prev_disabled"`
	NextDisabled bool           `json:"next_disabled"`
}

// Empty reports a page without rows ("No records found").
func (p PageView) Empty() bool {
	return len(p.Records) == 0
}
