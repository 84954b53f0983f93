package meds

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/printers"
)

// Meds toggles checklist items for a day and prints the day. With no items
// it prints the week instead.
type Meds struct {
	Session *app.Session
	Items   []string
	DateKey string
	Week    int
	Out     io.Writer
}

func (n *Meds) Do(ctx context.Context) error {
	if n.Session == nil || n.Session.Checklist() == nil {
		return errors.New("can not track medicine, no session")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	pp := printers.PrettyPrint{Out: out}

	if len(n.Items) == 0 {
		days := n.Session.Medicine().QueryByWeek(n.Week)
		pp.TitleWithCount("Medicine", len(days))
		pp.Days(days...)
		return nil
	}

	list := n.Session.Checklist()
	if n.DateKey != "" {
		list.Open(n.DateKey)
	}
	for _, item := range n.Items {
		list.Toggle(item)
	}
	if err := list.Close(); err != nil {
		return fmt.Errorf("checklist not saved: %w", err)
	}

	day, ok := n.Session.Medicine().Get(list.Date())
	if !ok {
		pp.Title(list.Date())
		pp.Days()
		return nil
	}
	pp.Days(day)
	return nil
}
