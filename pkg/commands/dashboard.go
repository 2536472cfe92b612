package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mellow/pkg/commands/options"
	"tableflip.dev/mellow/pkg/runner/dashboard"
)

func addDashboard(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"d"},
		Short:   "recent moods, the latest entry and mood counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withSession(cmd.Context(), func(s *session) error {
				n := dashboard.Dashboard{
					ShowID: io.ShowID,
					JSON:   oo.JSON,
					Out:    cmd.OutOrStdout(),
					Store:  s.Store,
				}
				return n.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
