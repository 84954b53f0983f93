package stage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/stage"
)

// Stage shows the current stage, or changes it when Set is given.
type Stage struct {
	Session *app.Session
	Set     string
	Out     io.Writer
}

func (n *Stage) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not get stage, no session")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if n.Set != "" {
		s, ok := stage.Parse(n.Set)
		if !ok {
			names := make([]string, 0, stage.Count)
			for _, s := range stage.All() {
				names = append(names, s.String())
			}
			return fmt.Errorf("unknown stage %q, expected one of %s", n.Set, strings.Join(names, ", "))
		}
		if err := n.Session.SetStage(s); err != nil {
			return fmt.Errorf("stage not saved: %w", err)
		}
	}

	b := color.New(color.Bold)
	f := color.New(color.Faint)
	_, _ = b.Fprintln(out, n.Session.CurrentStage().String())
	for _, id := range n.Session.VisiblePages() {
		_, _ = f.Fprintf(out, "  %s\n", id)
	}
	return nil
}
