package main

import (
	"context"
	"fmt"

	"course-checkout/cmd/bootstrap"
	"course-checkout/internal/usecase/commands"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run one of the scheduled sweeps once",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "expire",
		Short: "Expire entitlements and online orders past their access window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSweeps(cmd, func(ctx context.Context, s commands.SweepCommands) error {
				report, err := s.ExpireDue(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "expired %d entitlements, %d orders\n", report.Entitlements, len(report.Orders))
				for _, number := range report.Orders {
					fmt.Fprintln(cmd.OutOrStdout(), "  "+number)
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remind",
		Short: "Mail buyers whose access expires within the lookahead",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSweeps(cmd, func(ctx context.Context, s commands.SweepCommands) error {
				report, err := s.SendExpiryReminders(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "sent %d of %d expiry reminders\n", report.Sent, report.Matched)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "practical-reminders",
		Short: "Mail participants whose practical course starts tomorrow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSweeps(cmd, func(ctx context.Context, s commands.SweepCommands) error {
				report, err := s.SendPracticalReminders(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "sent %d of %d practical reminders\n", report.Sent, report.Matched)
				return nil
			})
		},
	})

	return cmd
}

func withSweeps(cmd *cobra.Command, run func(ctx context.Context, s commands.SweepCommands) error) error {
	var sweeps commands.SweepCommands
	return runWith(cmd, fx.Options(bootstrap.CoreModule, fx.Populate(&sweeps)), func(ctx context.Context) error {
		return run(ctx, sweeps)
	})
}
