package main

import (
	"context"
	"fmt"

	"course-checkout/cmd/bootstrap"
	"course-checkout/internal/usecase/commands"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func participantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "participant",
		Short: "Manage practical course participants",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "cancel <orderNumber>",
		Short: "Cancel the participant of an order and release its seat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var participants commands.ParticipantCommands
			opts := fx.Options(bootstrap.CoreModule, fx.Populate(&participants))
			return runWith(cmd, opts, func(ctx context.Context) error {
				res, err := participants.CancelParticipant(ctx, args[0])
				if err != nil {
					return err
				}
				if !res.Cancelled {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: participant was already cancelled\n", res.OrderNumber)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: participant cancelled, seat released\n", res.OrderNumber)
				return nil
			})
		},
	})

	return cmd
}
