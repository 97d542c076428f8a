package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hielopolar/polar/internal/app"
	"github.com/hielopolar/polar/internal/asset"
)

const commandTimeout = 30 * time.Second

func runConsole(ctx context.Context, flags *rootFlags) error {
	return app.Run(ctx, app.Options{
		ConfigPath: flags.configPath,
		PrefsPath:  flags.prefsPath,
		PullEvery:  flags.pullSeconds,
	})
}

// withRuntime opens the runtime, loads the collection and closes both after fn.
func withRuntime(flags *rootFlags, fn func(rt *app.Runtime) error) error {
	rt, err := app.Open(flags.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()
	rt.Store.Load()
	return fn(rt)
}

func newListCmd(flags *rootFlags) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the resolved collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter asset.Status
			if status != "" {
				st, err := asset.ParseStatus(status)
				if err != nil {
					return err
				}
				filter = st
			}
			return withRuntime(flags, func(rt *app.Runtime) error {
				return printAssets(cmd.OutOrStdout(), rt.Store.Assets(), filter)
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "only list assets with this status")
	return cmd
}

func printAssets(w io.Writer, c asset.Collection, filter asset.Status) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMODELO\tSERIE\tESTADO\tUBICACIÓN\tASIGNADO")
	for _, a := range c {
		if filter != "" && a.Status != filter {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Model, a.SerialNumber, a.Status.Label(), a.Location, a.AssignedTo)
	}
	return tw.Flush()
}

func newPullCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Merge the remote table into the local mirror",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(flags, func(rt *app.Runtime) error {
				ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
				defer cancel()
				if err := rt.Store.Pull(ctx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d conservadores sincronizados\n", len(rt.Store.Assets()))
				return nil
			})
		},
	}
}

func newPushCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Upsert every local asset to the remote table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(flags, func(rt *app.Runtime) error {
				ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
				defer cancel()
				c := rt.Store.Assets()
				if err := rt.Service.Push(ctx, c); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d conservadores enviados\n", len(c))
				return nil
			})
		},
	}
}

func newResetCmd(flags *rootFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Overwrite the local mirror with the seed collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset discards local changes; pass --yes to confirm")
			}
			rt, err := app.Open(flags.configPath)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()
			c, err := rt.Service.Reset()
			if err != nil {
				return err
			}
			rt.Logger.Info("mirror reset", zap.Int("assets", len(c)))
			fmt.Fprintf(cmd.OutOrStdout(), "Copia local restablecida con %d conservadores\n", len(c))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
