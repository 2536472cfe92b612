package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/mellow/pkg/commands/options"
	"tableflip.dev/mellow/pkg/journal"
	"tableflip.dev/mellow/pkg/runner/add"
	"tableflip.dev/mellow/pkg/runner/get"
	"tableflip.dev/mellow/pkg/runner/remove"
)

func addJournal(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "journal",
		Aliases: []string{"j"},
		Short:   "write, list, search and delete journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addJournalAdd(cmd)
	addJournalList(cmd)
	addJournalSearch(cmd)
	addDelete(cmd, journal.CollectionJournal)

	topLevel.AddCommand(cmd)
}

func addJournalAdd(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "write a journal entry",
		Example: `
mellow journal add Walked to the lake and back.
mellow journal add
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args, " ")
			if len(args) == 0 {
				var err error
				if content, err = terminal(cmd).Text("Entry"); err != nil {
					return oo.HandleError(err)
				}
			}
			err := withSession(cmd.Context(), func(s *session) error {
				n := add.Journal{
					Content: content,
					JSON:    oo.JSON,
					ShowID:  io.ShowID,
					Out:     cmd.OutOrStdout(),
					Store:   s.Store,
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

func addJournalList(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	so := &options.SinceOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "list journal entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			since, err := so.Window()
			if err != nil {
				return oo.HandleError(err)
			}
			err = withSession(cmd.Context(), func(s *session) error {
				n := get.Get{
					Collection: journal.CollectionJournal,
					Since:      since,
					ShowID:     io.ShowID,
					JSON:       oo.JSON,
					Out:        cmd.OutOrStdout(),
					Store:      s.Store,
				}
				return n.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	options.AddSinceArgs(cmd, so)
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addJournalSearch(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	on := &options.OnOptions{}
	var term string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "find journal entries by text and date",
		Example: `
mellow journal search --term coffee
mellow journal search --on 2024-02
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := on.Prefix()
			if err != nil {
				return oo.HandleError(err)
			}
			err = withSession(cmd.Context(), func(s *session) error {
				n := get.Get{
					Collection: journal.CollectionJournal,
					Term:       term,
					Date:       date,
					ShowID:     io.ShowID,
					JSON:       oo.JSON,
					Out:        cmd.OutOrStdout(),
					Store:      s.Store,
				}
				return n.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "Text to look for, ignoring case.")
	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

// addDelete adds the delete subcommand for collection c.
func addDelete(topLevel *cobra.Command, c journal.Collection) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "delete a " + string(c) + " entry",
		Example: `
mellow ` + string(c) + ` delete 1706745600000
mellow ` + string(c) + ` delete 1706745600000 --yes
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := options.ParseID(args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			err = withSession(cmd.Context(), func(s *session) error {
				n := remove.Remove{
					Collection: c,
					ID:         id,
					JSON:       oo.JSON,
					Out:        cmd.OutOrStdout(),
					Store:      s.Store,
				}
				if !co.Yes {
					n.Confirm = terminal(cmd).Confirm
				}
				return n.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
