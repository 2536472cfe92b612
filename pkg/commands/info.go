package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mellow/pkg/commands/options"
	"tableflip.dev/mellow/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "show where entries are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withSession(cmd.Context(), func(s *session) error {
				n := info.Info{
					Config: s.Config,
					Store:  s.Store,
					JSON:   oo.JSON,
					Out:    cmd.OutOrStdout(),
				}
				return n.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
