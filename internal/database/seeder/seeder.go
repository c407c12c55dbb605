package seeder

import (
	"context"

	"jobboard/internal/database"
)

// Seeder writes synthetic rows and reports how many top-level rows it created.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) (int, error)
}
