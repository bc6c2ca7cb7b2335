package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "chess",
		Short:        "Chess rules engine and game server",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newPerftCmd(), newMovesCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
