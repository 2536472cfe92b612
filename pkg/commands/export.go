package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/mellow/pkg/export"
)

func addExport(topLevel *cobra.Command) {
	output := string(export.FormatJSON)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "write every journal and mood entry to stdout",
		Example: `
mellow export > mellow.json
mellow export -o yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(output)
			if err != nil {
				return err
			}
			return withSession(cmd.Context(), func(s *session) error {
				doc := export.NewDocument(s.Store.Journal(), s.Store.Moods(), time.Now())
				return export.Write(cmd.OutOrStdout(), f, doc)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", output, "Output format. One of 'json' or 'yaml'.")

	topLevel.AddCommand(cmd)
}
