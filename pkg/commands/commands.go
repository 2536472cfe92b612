package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mellow/pkg/commands/options"
)

var (
	oo = &options.OutputOptions{}
	g  = &options.GlobalOptions{}
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mellow",
		Short: options.Wrap80("Track your mood and keep a journal on the command line."),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			oo.Out = cmd.OutOrStdout()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
	options.AddGlobalArgs(cmd, g)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addJournal(topLevel)
	addMood(topLevel)
	addDashboard(topLevel)
	addExport(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
