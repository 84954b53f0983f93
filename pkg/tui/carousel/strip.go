package carousel

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

// cell fits s into exactly width columns.
func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// block lays text out as height rows of width columns each.
func block(text string, width, height int) []string {
	lines := strings.Split(text, "\n")
	rows := make([]string, height)
	for i := range rows {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		rows[i] = cell(line, width)
	}
	return rows
}

// window places the pages side by side and cuts out the width columns that
// the drag offset exposes. offset is in percent of one page, as reported by
// the navigator: 0 shows the first page, -100 the second.
func window(pages [][]string, offset float64, width int) []string {
	if len(pages) == 0 || width <= 0 {
		return nil
	}
	shift := int(math.Round(-offset / 100 * float64(width)))
	shift = max(0, min(shift, (len(pages)-1)*width))

	first := shift / width
	skip := shift % width
	rows := make([]string, len(pages[0]))
	for r := range rows {
		var b strings.Builder
		b.WriteString(pages[first][r])
		if first+1 < len(pages) {
			b.WriteString(pages[first+1][r])
		}
		rows[r] = runewidth.Truncate(dropLeft(b.String(), skip), width, "")
	}
	return rows
}

// dropLeft removes the first w columns of s. A wide rune split by the cut
// becomes a space.
func dropLeft(s string, w int) string {
	col := 0
	for i, r := range s {
		if col >= w {
			return strings.Repeat(" ", col-w) + s[i:]
		}
		col += runewidth.RuneWidth(r)
	}
	return strings.Repeat(" ", max(col-w, 0))
}
