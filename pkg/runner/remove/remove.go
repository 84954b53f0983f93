package remove

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/page"
)

// Remove deletes an entry by id, or a checklist day by its date key.
type Remove struct {
	Session *app.Session
	Page    page.ID
	ID      string
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not delete, no session")
	}
	if err := n.Session.Delete(n.Page, n.ID); err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	_, _ = color.New(color.Faint).Fprintf(out, "deleted %s from %s\n", n.ID, n.Page)
	return nil
}
