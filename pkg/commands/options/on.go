package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// OnOptions filters entries by the UTC calendar date they were written.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Only entries from a UTC date, example: --on="2024-02-28" or --on="2024-02".`)
}

var onLayouts = []string{"2006-01-02", "2006-01", "2006"}

// Prefix returns the date prefix to match entry dates against. Empty
// matches every date.
func (o *OnOptions) Prefix() (string, error) {
	s := strings.TrimSpace(o.OnString)
	if s == "" {
		return "", nil
	}
	for _, layout := range onLayouts {
		if len(s) != len(layout) {
			continue
		}
		if _, err := time.Parse(layout, s); err == nil {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid --on %q, expected YYYY-MM-DD, YYYY-MM or YYYY", o.OnString)
}
