package seeder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"jobboard/internal/database"
)

// Runner executes seeders in order and stops at the first failure.
type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

// Summary maps seeder name to rows created.
type Summary map[string]int

func (r Runner) Run(ctx context.Context, db database.DB) (Summary, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}

	out := Summary{}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		n, err := s.Run(ctx, db)
		if err != nil {
			return out, fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		out[s.Name()] = n
		if r.Logger != nil {
			r.Logger.Printf("[Seeder] %s created=%d took=%s", s.Name(), n, time.Since(start).Round(time.Millisecond))
		}
	}
	return out, nil
}
