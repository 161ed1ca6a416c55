// Package cli implements the matchctl client command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var serverURL string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "matchctl",
		Short: "Client for the match server wire protocol",
		Long: `matchctl connects to a match server over websocket and speaks its
field-delimited wire protocol interactively: login, matchmaking, moves,
chat, and spectating.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "ws://localhost:8080/ws", "Server websocket URL")

	rootCmd.AddCommand(newConnectCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
