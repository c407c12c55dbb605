package migration

import (
	"context"
	"database/sql"
	"fmt"
)

// Checker reports through Ping whether the schema is current, so it can sit
// next to the database and cache in the health endpoint.
type Checker struct {
	Runner Runner
	DB     *sql.DB
}

func (c Checker) Ping(ctx context.Context) error {
	todo, err := c.Runner.Pending(ctx, c.DB)
	if err != nil {
		return err
	}
	if len(todo) > 0 {
		return fmt.Errorf("%d pending migrations, next version=%d", len(todo), todo[0].Version)
	}
	return nil
}
