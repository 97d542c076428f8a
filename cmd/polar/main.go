package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "polar: %v\n", err)
		return 1
	}
	return 0
}

type rootFlags struct {
	configPath  string
	prefsPath   string
	pullSeconds int
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "polar",
		Short:         "Registro de conservadores de Hielo Polar",
		Long:          "polar manages the cold-storage asset registry: a local mirror with an optional remote table.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd.Context(), flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file path (default ~/.config/polar/config.toml)")
	root.Flags().StringVar(&flags.prefsPath, "prefs", "", "preferences file path (default ~/.config/polar/prefs.toml)")
	root.Flags().IntVar(&flags.pullSeconds, "pull", 0, "remote pull interval in seconds (overrides config)")

	root.AddCommand(
		newListCmd(flags),
		newPullCmd(flags),
		newPushCmd(flags),
		newResetCmd(flags),
	)
	return root
}
