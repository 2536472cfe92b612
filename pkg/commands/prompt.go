package commands

import (
	"io"

	"github.com/spf13/cobra"

	"tableflip.dev/mellow/pkg/prompt"
)

func terminal(cmd *cobra.Command) prompt.Terminal {
	return prompt.Terminal{
		In:  io.NopCloser(cmd.InOrStdin()),
		Out: prompt.NopCloser(cmd.OutOrStdout()),
	}
}
