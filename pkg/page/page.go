// Package page defines the tracker pages shown in the carousel.
package page

import (
	"fmt"
	"strings"
)

// ID identifies a page. The set of ids is closed and shared between the
// visibility policy, the navigator and the router.
type ID string

const (
	Mood        ID = "mood-tracker"
	Sleep       ID = "sleep-tracker"
	Symptoms    ID = "symptoms-tracker"
	Medicine    ID = "medicine-tracker"
	Appointment ID = "doctor-appointment"
	MedicalTest ID = "medical-test"
	Reminder    ID = "personal-reminder"
)

// Renderer draws the body of a page for the given width.
type Renderer interface {
	Render(width int) string
}

// RenderFunc adapts a function to a Renderer.
type RenderFunc func(width int) string

func (f RenderFunc) Render(width int) string { return f(width) }

// Page is immutable configuration for one screen of the carousel.
type Page struct {
	ID    ID
	Label string
	// DataCollecting pages produce an entry on completion; simple pages
	// only acknowledge.
	DataCollecting bool
	// Required payload keys checked before a data-collecting page completes.
	Required []string
	// LogKey is the store key of the history log the page writes to.
	LogKey string
	Render Renderer
}

// Catalog is the ordered list of all pages known to the application.
type Catalog struct {
	pages []Page
	index map[ID]int
}

// NewCatalog builds a catalog. Duplicate ids are rejected.
func NewCatalog(pages ...Page) (*Catalog, error) {
	c := &Catalog{
		pages: make([]Page, 0, len(pages)),
		index: make(map[ID]int, len(pages)),
	}
	for _, p := range pages {
		if p.ID == "" {
			return nil, fmt.Errorf("page: empty id for %q", p.Label)
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, fmt.Errorf("page: duplicate id %q", p.ID)
		}
		if p.Render == nil {
			p.Render = summary(p)
		}
		c.index[p.ID] = len(c.pages)
		c.pages = append(c.pages, p)
	}
	return c, nil
}

// Lookup returns the page with the given id.
func (c *Catalog) Lookup(id ID) (Page, bool) {
	i, ok := c.index[id]
	if !ok {
		return Page{}, false
	}
	return c.pages[i], true
}

// Contains reports whether id is part of the catalog.
func (c *Catalog) Contains(id ID) bool {
	_, ok := c.index[id]
	return ok
}

// IDs returns page ids in catalog order.
func (c *Catalog) IDs() []ID {
	ids := make([]ID, len(c.pages))
	for i, p := range c.pages {
		ids[i] = p.ID
	}
	return ids
}

// Pages returns a copy of the catalog in order.
func (c *Catalog) Pages() []Page {
	out := make([]Page, len(c.pages))
	copy(out, c.pages)
	return out
}

// Default returns the built-in catalog of tracker pages.
func Default() *Catalog {
	c, err := NewCatalog(
		Page{ID: Mood, Label: "Mood", DataCollecting: true, Required: []string{"mood"}, LogKey: "mood-history"},
		Page{ID: Sleep, Label: "Sleep", DataCollecting: true, Required: []string{"bedtime", "wakeTime"}, LogKey: "sleep-history"},
		Page{ID: Symptoms, Label: "Symptoms", DataCollecting: true, Required: []string{"symptoms"}, LogKey: "symptom-history"},
		Page{ID: Medicine, Label: "Medicine", LogKey: "medicine-history"},
		Page{ID: Appointment, Label: "Doctor appointment", DataCollecting: true, Required: []string{"doctorName", "date"}, LogKey: "appointment-history"},
		Page{ID: MedicalTest, Label: "Medical test", DataCollecting: true, Required: []string{"testName", "date"}, LogKey: "test-history"},
		Page{ID: Reminder, Label: "Personal reminder", DataCollecting: true, Required: []string{"title", "date"}, LogKey: "task-list"},
	)
	if err != nil {
		panic(err)
	}
	return c
}

func summary(p Page) Renderer {
	return RenderFunc(func(width int) string {
		var b strings.Builder
		b.WriteString(p.Label)
		b.WriteString("\n\n")
		if p.DataCollecting {
			b.WriteString("fields: ")
			b.WriteString(strings.Join(p.Required, ", "))
		} else {
			b.WriteString("checklist")
		}
		return b.String()
	})
}
