package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/commands/options"
	"tableflip.dev/tend/pkg/runner/meds"
)

func addMeds(topLevel *cobra.Command) {
	do := &options.DateOptions{}
	wo := &options.WeekOptions{}

	cmd := &cobra.Command{
		Use:   "meds [item...]",
		Short: "check or uncheck medicine taken on a day",
		Example: `
tend meds aspirin
tend meds aspirin zinc --date 3/12
tend meds --week -1
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := openSession(app.Options{}, false)
			if err != nil {
				return err
			}
			defer o.Close()

			dateKey, err := do.GetDateKey(time.Now(), time.Local)
			if err != nil {
				return err
			}
			m := meds.Meds{
				Session: o.session,
				Items:   args,
				DateKey: dateKey,
				Week:    wo.Week,
			}
			return m.Do(context.Background())
		},
	}

	options.AddDateArgs(cmd, do)
	options.AddWeekArgs(cmd, wo)
	topLevel.AddCommand(cmd)
}
