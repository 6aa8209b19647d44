package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tfin",
	Short: "tfin runs financial discrete-event simulations",
	Long: `tfin runs financial discrete-event simulations. A simulation ` +
		`advances a logical clock by dispatching scheduled events, such as ` +
		`ledger transactions, in timestamp order.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	// A .env file can provide defaults such as TFIN_MONITOR_PORT.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
