package form

import "github.com/goliatone/go-gallery/pkg/model"

// SlotView is the render-ready projection of one image slot.
type SlotView struct {
	Index    int    `json:"index"`
	Kind     string `json:"kind"`
	Ref      string `json:"ref,omitempty"`
	FileName string `json:"file_name,omitempty"`
}

// View is a read-only snapshot handed to renderers.
type View struct {
	Mode        Mode       `json:"mode"`
	RecordID    int64      `json:"record_id,omitempty"`
	Heading     string     `json:"heading"`
	SubmitLabel string     `json:"submit_label"`
	Method      string     `json:"method"`
	Action      string     `json:"action"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Slots       []SlotView `json:"slots"`
}

// View projects the controller state for rendering. Action is left empty when
// the endpoint contract cannot resolve it.
func (c *Controller) View() View {
	action, err := c.action()
	if err != nil {
		c.logger.Warn("unable to resolve form action", "err", err)
	}
	view := View{
		Mode:        c.mode,
		Heading:     c.Heading(),
		SubmitLabel: c.SubmitLabel(),
		Method:      method,
		Action:      action,
		Title:       c.buffer.Title,
		Description: c.buffer.Description,
		Status:      c.buffer.Status.FormValue(),
		Slots:       make([]SlotView, 0, len(c.buffer.Images)),
	}
	if c.record != nil {
		view.RecordID = c.record.ID
	}
	for i, slot := range c.buffer.Images {
		sv := SlotView{Index: i, Kind: string(slot.Kind())}
		switch slot.Kind() {
		case model.SlotKindExisting:
			sv.Ref = slot.Ref()
		case model.SlotKindNew:
			if file := slot.File(); file != nil {
				sv.FileName = file.Name
			}
		}
		view.Slots = append(view.Slots, sv)
	}
	return view
}
