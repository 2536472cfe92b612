package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mellow/pkg/commands/options"
	"tableflip.dev/mellow/pkg/entry"
	"tableflip.dev/mellow/pkg/journal"
	"tableflip.dev/mellow/pkg/runner/add"
	"tableflip.dev/mellow/pkg/runner/get"
)

func moodNames() []string {
	moods := entry.Moods()
	out := make([]string, 0, len(moods))
	for _, m := range moods {
		out = append(out, string(m))
	}
	return out
}

func addMood(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "mood",
		Aliases: []string{"m"},
		Short:   "record, list, search and delete mood entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addMoodAdd(cmd)
	addMoodList(cmd)
	addMoodSearch(cmd)
	addDelete(cmd, journal.CollectionMood)

	topLevel.AddCommand(cmd)
}

func addMoodAdd(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}
	var note string

	cmd := &cobra.Command{
		Use:   "add [mood]",
		Short: "record how you feel",
		Long:  options.Wrap80("Record a mood. Without a mood, neutral is recorded unless --interactive asks for one."),
		Example: `
mellow mood add happy --note "finished the book"
mellow mood add -i
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: moodNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				mood entry.Mood
				err  error
			)
			switch {
			case i.ShouldPrompt(args):
				mood, err = terminal(cmd).Mood()
			case len(args) == 1:
				mood, err = entry.ParseMood(args[0])
			default:
				mood = entry.Neutral
			}
			if err != nil {
				return oo.HandleError(err)
			}
			err = withSession(cmd.Context(), func(s *session) error {
				n := add.Mood{
					Mood:   mood,
					Note:   note,
					JSON:   oo.JSON,
					ShowID: io.ShowID,
					Out:    cmd.OutOrStdout(),
					Store:  s.Store,
				}
				return n.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Optional note to go with the mood.")
	options.AddInteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addMoodList(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	so := &options.SinceOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "log"},
		Short:   "list mood entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			since, err := so.Window()
			if err != nil {
				return oo.HandleError(err)
			}
			err = withSession(cmd.Context(), func(s *session) error {
				n := get.Get{
					Collection: journal.CollectionMood,
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

func addMoodSearch(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	on := &options.OnOptions{}
	mood := entry.MoodAll

	cmd := &cobra.Command{
		Use:   "search",
		Short: "find mood entries by mood and date",
		Example: `
mellow mood search --mood anxious
mellow mood search --mood all --on 2024-02-14
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := on.Prefix()
			if err != nil {
				return oo.HandleError(err)
			}
			err = withSession(cmd.Context(), func(s *session) error {
				n := get.Get{
					Collection: journal.CollectionMood,
					Mood:       mood,
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

	cmd.Flags().StringVar(&mood, "mood", entry.MoodAll, "Mood to match, or all.")
	_ = cmd.RegisterFlagCompletionFunc("mood", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return append([]string{entry.MoodAll}, moodNames()...), cobra.ShellCompDirectiveNoFileComp
	})
	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
