package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/runner/stage"
)

func addStage(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "stage [planning|treatment|aftercare]",
		Short: "show or change the current stage",
		Example: `
tend stage
tend stage treatment
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"planning", "treatment", "aftercare"},
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := openSession(app.Options{}, false)
			if err != nil {
				return err
			}
			defer o.Close()

			s := stage.Stage{Session: o.session}
			if len(args) == 1 {
				s.Set = args[0]
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
