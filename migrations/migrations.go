// Package migrations embeds the SQL schema. Every statement is idempotent, so
// Apply can run against an already migrated database.
package migrations

import (
	"context"
	"embed"
	"io/fs"
	"sort"

	"course-checkout/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed *.sql
var files embed.FS

// Apply runs every migration file in name order and returns the applied names.
func Apply(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, errs.Wrap(err, "list migrations")
	}
	sort.Strings(names)

	for _, name := range names {
		sql, err := files.ReadFile(name)
		if err != nil {
			return nil, errs.Wrapf(err, "read migration %s", name)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return nil, errs.Wrapf(err, "apply migration %s", name)
		}
	}
	return names, nil
}
