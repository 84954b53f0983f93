package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/tend/pkg/app"
	"tableflip.dev/tend/pkg/commands/options"
	"tableflip.dev/tend/pkg/page"
	"tableflip.dev/tend/pkg/runner/log"
	"tableflip.dev/tend/pkg/snake"
)

func addLog(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "log <page> key=value...",
		Short: "record an entry on a tracker page",
		Example: `
tend log mood-tracker mood=calm
tend log sleep-tracker bedtime=2024-03-12T23:00 wakeTime=2024-03-13T07:10
tend log doctor-appointment doctorName=Lee date=2024-03-20
tend log -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if i.Interactive || len(args) > 0 {
				return nil
			}
			return errors.New("requires a page, or --interactive")
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return pageCompletions(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := openSession(app.Options{}, false)
			if err != nil {
				return err
			}
			defer o.Close()

			var id page.ID
			var pairs []string
			if len(args) > 0 {
				id, pairs = page.ID(args[0]), args[1:]
			}
			if i.Interactive {
				pio := snake.IO{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
				if id == "" {
					if id, err = snake.PromptPage(o.session.Catalog(), pio); err != nil {
						return err
					}
				}
				p, ok := o.session.Catalog().Lookup(id)
				if !ok {
					return fmt.Errorf("unknown page %q", id)
				}
				if pairs, err = snake.PromptFields(p, pairs, pio); err != nil {
					return err
				}
			}

			l := log.Log{
				Session: o.session,
				Page:    id,
				Pairs:   pairs,
				ShowID:  io.ShowID,
			}
			return l.Do(context.Background())
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.InteractiveArgs(cmd, i)
	topLevel.AddCommand(cmd)
}
