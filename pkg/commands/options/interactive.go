package options

import (
	"github.com/spf13/cobra"
)

// InteractiveOptions asks for values left off the command line.
type InteractiveOptions struct {
	Interactive bool
}

func AddInteractiveArgs(cmd *cobra.Command, o *InteractiveOptions) {
	cmd.Flags().BoolVarP(&o.Interactive, "interactive", "i", false,
		`Prompt for anything not given on the command line.`)
}

// ShouldPrompt reports whether a value missing from args should be asked for.
func (o *InteractiveOptions) ShouldPrompt(args []string) bool {
	return o.Interactive && len(args) == 0
}
