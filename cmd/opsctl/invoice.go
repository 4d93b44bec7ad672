package main

import (
	"context"
	"fmt"

	"course-checkout/cmd/bootstrap"
	"course-checkout/internal/usecase/commands"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func invoiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Manage order invoices",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "retry <orderNumber>",
		Short: "Issue the invoice of a paid order whose issuance failed",
		Long: `Issue the invoice of a paid order that has no invoice yet.

Orders that already carry an invoice id are refused, so running this twice
never produces a second invoice.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var invoices commands.InvoiceCommands
			opts := fx.Options(bootstrap.CoreModule, fx.Populate(&invoices))
			return runWith(cmd, opts, func(ctx context.Context) error {
				inv, err := invoices.RetryInvoice(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: issued invoice %s\n", args[0], inv.Number)
				return nil
			})
		},
	})

	return cmd
}
