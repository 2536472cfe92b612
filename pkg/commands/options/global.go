package options

import (
	"github.com/spf13/cobra"
)

// GlobalOptions are accepted by every command.
type GlobalOptions struct {
	Config    string
	Backend   string
	Ephemeral bool
	LogLevel  string
}

func AddGlobalArgs(cmd *cobra.Command, o *GlobalOptions) {
	cmd.PersistentFlags().StringVar(&o.Config, "config", "",
		"Config file. Defaults to .mellow.yaml in $MELLOW_CONFIG_PATH, the working directory or $HOME.")
	cmd.PersistentFlags().StringVar(&o.Backend, "backend", "",
		"Storage backend: diskv, sqlite, redis, postgres, mongo or memory.")
	cmd.PersistentFlags().BoolVar(&o.Ephemeral, "ephemeral", false,
		"Keep everything in memory and write nothing to disk.")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "",
		"Log level: debug, info, warn or error.")
}
