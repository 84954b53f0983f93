// Package visibility decides which pages are enabled for each stage.
package visibility

import (
	"tableflip.dev/tend/pkg/page"
	"tableflip.dev/tend/pkg/stage"
)

// Rule lists the pages enabled for one stage, in carousel order.
type Rule struct {
	Pages []page.ID
	// ExtraPanel toggles the optional summary panel under the carousel.
	ExtraPanel bool
}

// defaultRules is indexed by stage. Adding a stage without a row here
// breaks the build through the length check below.
var defaultRules = [...]Rule{
	stage.Planning: {
		Pages: []page.ID{page.Mood, page.Sleep, page.Symptoms, page.Reminder},
	},
	stage.Treatment: {
		Pages: []page.ID{
			page.Mood, page.Sleep, page.Symptoms, page.Medicine,
			page.Appointment, page.MedicalTest, page.Reminder,
		},
		ExtraPanel: true,
	},
	stage.Aftercare: {
		Pages: []page.ID{page.Mood, page.Sleep, page.Medicine, page.Appointment, page.Reminder},
	},
}

var _ = [1]struct{}{}[len(defaultRules)-stage.Count]

// Policy is a static stage to pages table. It is safe for concurrent use
// because it is never mutated after construction.
type Policy struct {
	rules [stage.Count]Rule
}

// Default returns the built-in policy.
func Default() *Policy {
	p := &Policy{}
	for i, r := range defaultRules {
		p.rules[i] = Rule{
			Pages:      append([]page.ID(nil), r.Pages...),
			ExtraPanel: r.ExtraPanel,
		}
	}
	return p
}

// VisiblePages returns the enabled pages for s in order. s must be valid.
func (p *Policy) VisiblePages(s stage.Stage) []page.ID {
	return append([]page.ID(nil), p.rules[s].Pages...)
}

// IsPageVisible reports whether id is enabled for s.
func (p *Policy) IsPageVisible(s stage.Stage, id page.ID) bool {
	for _, v := range p.rules[s].Pages {
		if v == id {
			return true
		}
	}
	return false
}

// ExtraPanel reports whether the optional panel is on for s.
func (p *Policy) ExtraPanel(s stage.Stage) bool {
	return p.rules[s].ExtraPanel
}

// Rule returns a copy of the rule for s.
func (p *Policy) Rule(s stage.Stage) Rule {
	r := p.rules[s]
	r.Pages = append([]page.ID(nil), r.Pages...)
	return r
}
