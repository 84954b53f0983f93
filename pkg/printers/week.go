package printers

import (
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/tend/pkg/timeutil"
)

const width = len("Su Mo Tu We Th Fr Sa") // an example week

// Week prints the seven days of w with days that have a record in bold,
// centred under the week's range.
func (pp *PrettyPrint) Week(w timeutil.Week, dateKeys ...string) {
	tf := color.New(color.FgWhite, color.Italic)

	title := w.String()
	mid := max((width-len(title))/2, 0)
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), title)

	recorded := make(map[string]bool, len(dateKeys))
	for _, k := range dateKeys {
		recorded[k] = true
	}

	h := color.New(color.Faint)
	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for d := time.Sunday; d <= time.Saturday; d++ {
		_, _ = h.Fprintf(pp.out(), "%s ", d.String()[0:2])
	}
	_, _ = h.Fprintln(pp.out())

	start, err := timeutil.ParseDateKey(w.From, time.UTC)
	if err != nil {
		return
	}
	for day := 0; day < 7; day++ {
		t := start.AddDate(0, 0, day)
		printer := l1
		if recorded[t.Format(timeutil.LayoutDateKey)] {
			printer = l2
		}
		_, _ = printer.Fprintf(pp.out(), "%2d ", t.Day())
	}
	_, _ = l1.Fprint(pp.out(), "\n\n")
}
