package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/entry"
	"tableflip.dev/tend/pkg/page"
	"tableflip.dev/tend/pkg/printers"
)

// History prints one week of records for a page, or for every page when
// Page is empty.
type History struct {
	Session *app.Session
	Page    page.ID
	Week    int
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (n *History) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not get history, no session")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	ids := []page.ID{n.Page}
	if n.Page == "" {
		ids = n.Session.Catalog().IDs()
	}

	all := make(map[page.ID]interface{}, len(ids))
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	for _, id := range ids {
		p, ok := n.Session.Catalog().Lookup(id)
		if !ok {
			return fmt.Errorf("unknown page %q", id)
		}
		if id == page.Medicine {
			daily := n.Session.Medicine()
			if daily == nil {
				continue
			}
			days := daily.QueryByWeek(n.Week)
			all[id] = days
			if n.JSON {
				continue
			}
			pp.TitleWithCount(p.Label, len(days))
			pp.Days(days...)
			continue
		}

		l, ok := n.Session.Log(id)
		if !ok {
			continue
		}
		entries := l.QueryByWeek(n.Week)
		all[id] = entries
		if n.JSON {
			continue
		}
		pp.TitleWithCount(p.Label, len(entries))
		pp.Week(l.Week(n.Week), dateKeys(entries)...)
		pp.History(entries...)
	}

	if n.JSON {
		b, err := json.MarshalIndent(all, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}
	return nil
}

func dateKeys(entries []entry.Entry) []string {
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.DateKey)
	}
	return keys
}
