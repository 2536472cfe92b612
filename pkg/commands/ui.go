package commands

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"tableflip.dev/mellow/pkg/app"
	teaui "tableflip.dev/mellow/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
mellow ui
mellow ui --ephemeral
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fd := os.Stdout.Fd()
			if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
				return errors.New("ui needs an interactive terminal, try the journal or mood commands instead")
			}
			// Ask the terminal before the program takes it over.
			helpStyle := "light"
			if termenv.HasDarkBackground() {
				helpStyle = "dark"
			}
			return withSession(cmd.Context(), func(s *session) error {
				ctrl, err := app.New(s.Store, app.WithLogger(s.Logger))
				if err != nil {
					return err
				}
				defer ctrl.Close()
				defer s.follow(cmd.Context(), ctrl)()
				return teaui.Run(cmd.Context(), ctrl, teaui.WithHelpStyle(helpStyle))
			})
		},
	}

	topLevel.AddCommand(cmd)
}
