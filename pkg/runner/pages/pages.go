package pages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/page"
	"tableflip.dev/tend/pkg/printers"
)

// Pages lists the catalog and where each page shows.
type Pages struct {
	Session *app.Session
	JSON    bool
	Out     io.Writer
}

type pageJSON struct {
	ID             page.ID  `json:"id"`
	Label          string   `json:"label"`
	DataCollecting bool     `json:"dataCollecting"`
	Required       []string `json:"required,omitempty"`
	Visible        bool     `json:"visible"`
}

func (n *Pages) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not list pages, no session")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if n.JSON {
		var all []pageJSON
		for _, p := range n.Session.Catalog().Pages() {
			all = append(all, pageJSON{
				ID:             p.ID,
				Label:          p.Label,
				DataCollecting: p.DataCollecting,
				Required:       p.Required,
				Visible:        n.Session.IsPageVisible(p.ID),
			})
		}
		b, err := json.MarshalIndent(all, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	pp := printers.PrettyPrint{Out: out}
	pp.Pages(n.Session.Catalog(), n.Session.Policy(), n.Session.CurrentStage())
	return nil
}
