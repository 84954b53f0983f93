package log

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/page"
	"tableflip.dev/tend/pkg/printers"
	"tableflip.dev/tend/pkg/tracker"
)

// Log records one entry on a page from key=value pairs.
type Log struct {
	Session *app.Session
	Page    page.ID
	Pairs   []string
	ShowID  bool
	Out     io.Writer
}

func (n *Log) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not log, no session")
	}
	p, ok := n.Session.Catalog().Lookup(n.Page)
	if !ok {
		return fmt.Errorf("unknown page %q", n.Page)
	}
	if !p.DataCollecting {
		return fmt.Errorf("%s is a checklist, use meds", p.ID)
	}

	payload, err := tracker.ParsePayload(n.Pairs)
	if err != nil {
		return err
	}
	e, err := n.Session.Complete(n.Page, payload)
	if e.ID == "" {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	pp.Title(p.Label)
	pp.History(e)
	if err != nil {
		return fmt.Errorf("entry not saved: %w", err)
	}
	return nil
}
