// cmd/regcli/main.go
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd is the terminal client entry point.
var rootCmd = &cobra.Command{
	Use:          "regcli",
	Short:        "TrustPanel company registration from the terminal",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log wizard events to stderr")
	rootCmd.AddCommand(newRegisterCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
