package options

import (
	"github.com/spf13/cobra"
)

// StoreOptions
type StoreOptions struct {
	Ephemeral bool
}

func AddStoreArgs(cmd *cobra.Command, o *StoreOptions) {
	cmd.PersistentFlags().BoolVar(&o.Ephemeral, "ephemeral", false,
		"Keep everything in memory; nothing is read from or written to disk.")
}
