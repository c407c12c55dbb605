package seeder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"jobboard/internal/database"
)

// RequireColumns fails when any table.column in want is absent from the
// public schema, naming every missing one. It guards seeders against running
// before migrations.
func RequireColumns(ctx context.Context, q database.Querier, want map[string][]string) error {
	if q == nil {
		return errors.New("nil db")
	}
	if len(want) == 0 {
		return nil
	}

	tables := make([]string, 0, len(want))
	for t := range want {
		tables = append(tables, t)
	}

	rows, err := q.Query(ctx,
		`SELECT table_name, column_name FROM information_schema.columns
		 WHERE table_schema = 'public' AND table_name = ANY($1)`,
		tables,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var table, col string
		if err := rows.Scan(&table, &col); err != nil {
			return err
		}
		existing[table+"."+col] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	return missingColumns(existing, want)
}

func missingColumns(existing map[string]struct{}, want map[string][]string) error {
	var missing []string
	for table, cols := range want {
		for _, col := range cols {
			if _, ok := existing[table+"."+col]; !ok {
				missing = append(missing, table+"."+col)
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("schema mismatch, run migrations first: missing %s", strings.Join(missing, ", "))
}
