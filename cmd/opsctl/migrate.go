package main

import (
	"context"
	"fmt"

	"course-checkout/cmd/bootstrap"
	"course-checkout/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the SQL schema",
		Long: `Apply the embedded SQL schema to the configured database.

Every statement is idempotent; running migrate on an up to date database is a no-op.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var pool *pgxpool.Pool
			opts := fx.Options(bootstrap.ConfigModule, bootstrap.LoggerModule, bootstrap.DBModule, fx.Populate(&pool))
			return runWith(cmd, opts, func(ctx context.Context) error {
				applied, err := migrations.Apply(ctx, pool)
				if err != nil {
					return err
				}
				for _, name := range applied {
					fmt.Fprintln(cmd.OutOrStdout(), "applied", name)
				}
				return nil
			})
		},
	}
}
