package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/mellow/pkg/timeutil"
)

// SinceOptions limits a listing to a recent window.
type SinceOptions struct {
	SinceString string
}

func AddSinceArgs(cmd *cobra.Command, o *SinceOptions) {
	cmd.Flags().StringVar(&o.SinceString, "since", "",
		`Only entries from a recent window, example: --since=3d or --since="2 weeks".`)
}

func (o *SinceOptions) Window() (time.Duration, error) {
	return timeutil.ParseSince(o.SinceString)
}
