// Command opsctl runs one-off operator tasks against the checkout database.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "opsctl",
		Short:         "Operator tasks for course checkout",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().Duration("timeout", 10*time.Minute, "give up after this long")

	rootCmd.AddCommand(sweepCmd())
	rootCmd.AddCommand(participantCmd())
	rootCmd.AddCommand(invoiceCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// runWith starts an fx app from opts, hands run a context bounded by
// --timeout and stops the app afterwards. Dependencies are pulled out of the
// graph with fx.Populate inside opts.
func runWith(cmd *cobra.Command, opts fx.Option, run func(ctx context.Context) error) error {
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	app := fx.New(opts, fx.NopLogger)
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer stopCancel()
		_ = app.Stop(stopCtx)
	}()

	return run(ctx)
}
