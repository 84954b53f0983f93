package printers

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tend/pkg/entry"
	"tableflip.dev/tend/pkg/page"
	"tableflip.dev/tend/pkg/stage"
	"tableflip.dev/tend/pkg/visibility"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("0f8fad5b-d9cb-469f-a165-70867728950e  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// History prints entries newest first, one per line, followed by their
// payload fields.
func (pp *PrettyPrint) History(entries ...entry.Entry) {
	if len(entries) == 0 {
		pp.none()
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	f := color.New(color.Faint)

	for _, e := range entries {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), e.ID)
			_, _ = y.Fprint(pp.out(), strings.Repeat(" ", max(len(spacing)-len(e.ID), 1)))
		}
		_, _ = t.Fprintf(pp.out(), "%s  %s", e.DateKey, e.Title)
		var fields []string
		for _, k := range e.FieldKeys() {
			v, _ := e.Field(k)
			fields = append(fields, k+"="+v)
		}
		if len(fields) > 0 {
			_, _ = f.Fprintf(pp.out(), "  %s", strings.Join(fields, " "))
		}
		_, _ = t.Fprintln(pp.out())
	}
	_, _ = t.Fprintln(pp.out())
}

// Days prints daily aggregates as a checklist per date.
func (pp *PrettyPrint) Days(days ...entry.DailyAggregate) {
	if len(days) == 0 {
		pp.none()
		return
	}
	t := color.New()
	b := color.New(color.Bold)
	for _, d := range days {
		_, _ = b.Fprintln(pp.out(), d.DateKey)
		items := append([]string(nil), d.Items...)
		sort.Strings(items)
		for _, item := range items {
			_, _ = t.Fprintf(pp.out(), "  ✓ %s\n", item)
		}
	}
	_, _ = t.Fprintln(pp.out())
}

// Pages prints the catalog with a column per stage marking where each
// page is shown.
func (pp *PrettyPrint) Pages(catalog *page.Catalog, policy *visibility.Policy, current stage.Stage) {
	bold := color.New(color.Bold).SprintFunc()

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold("Page"), bold("Label"), bold("Kind")}
	for _, s := range stage.All() {
		name := s.String()
		if s == current {
			name = "*" + name
		}
		header = append(header, bold(name))
	}
	tbl.AddRow(header...)

	for _, p := range catalog.Pages() {
		kind := "checklist"
		if p.DataCollecting {
			kind = "log"
		}
		row := []interface{}{p.ID, p.Label, kind}
		for _, s := range stage.All() {
			mark := ""
			if policy.IsPageVisible(s, p.ID) {
				mark = "●"
			}
			row = append(row, mark)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
