package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/runner/ui"
	"tableflip.dev/tend/pkg/tui/carousel"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the swipeable tracker pages",
		Example: `
tend ui
tend ui --ephemeral
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			b := carousel.NewBridge()
			o, err := openSession(app.Options{
				Scheduler:        b.Schedule,
				Notifier:         b,
				OnChecklistSaved: b.Saved,
			}, true)
			if err != nil {
				return err
			}
			defer o.Close()

			i := ui.UI{Session: o.session, Bridge: b, Store: o.kv, Logger: o.log}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
