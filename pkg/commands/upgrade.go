package commands

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
)

// upgradeTarget is what `tend upgrade` installs.
const upgradeTarget = "tableflip.dev/tend@latest"

func addUpgrade(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Reinstall tend from the latest release with go install.",
		Example: `
tend upgrade
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ex := exec.Command("go", "install", upgradeTarget)
			var out bytes.Buffer
			ex.Stdout = &out
			ex.Stderr = &out
			if err := ex.Run(); err != nil {
				return fmt.Errorf("%s: %w\n%s", ex.String(), err, out.String())
			}
			fmt.Printf("%s\n", ex.String())
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
