package options

import (
	"github.com/spf13/cobra"
)

// WeekOptions picks a week relative to the current one.
type WeekOptions struct {
	Week int
}

func AddWeekArgs(cmd *cobra.Command, o *WeekOptions) {
	cmd.Flags().IntVarP(&o.Week, "week", "w", 0,
		"Week offset, 0 is this week and -1 the one before.")
}
