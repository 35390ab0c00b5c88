package vanilla

// ChromeClass is a typed identifier for the semantic CSS hooks emitted by the
// templates.
type ChromeClass string

const (
	ClassRoot    ChromeClass = "gallery"
	ClassHeader  ChromeClass = "gallery-header"
	ClassSearch  ChromeClass = "gallery-search"
	ClassTable   ChromeClass = "gallery-table"
	ClassEmpty   ChromeClass = "gallery-empty"
	ClassPager   ChromeClass = "gallery-pager"
	ClassThumb   ChromeClass = "gallery-thumb"
	ClassForm    ChromeClass = "gallery-form"
	ClassSlots   ChromeClass = "gallery-slots"
	ClassActions ChromeClass = "gallery-actions"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"root":    string(ClassRoot),
		"header":  string(ClassHeader),
		"search":  string(ClassSearch),
		"table":   string(ClassTable),
		"empty":   string(ClassEmpty),
		"pager":   string(ClassPager),
		"thumb":   string(ClassThumb),
		"form":    string(ClassForm),
		"slots":   string(ClassSlots),
		"actions": string(ClassActions),
	}
}
