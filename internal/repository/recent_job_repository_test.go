package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type execRecorder struct {
	database.Querier
	query string
	args  []any
	err   error
}

func (e *execRecorder) Exec(_ context.Context, query string, args ...any) (int64, error) {
	e.query = query
	e.args = args
	return 1, e.err
}

func TestRecentJobTouch_UpsertsViewedAt(t *testing.T) {
	db := &execRecorder{}
	userID := uuid.New()

	if err := NewPostgresRecentJobRepository(db).Touch(context.Background(), userID, 9); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	q := strings.Join(strings.Fields(db.query), " ")
	if !strings.Contains(q, "ON CONFLICT (user_id, job_id) DO UPDATE SET viewed_at = EXCLUDED.viewed_at") {
		t.Fatalf("expected an upsert refreshing viewed_at, got %s", q)
	}
	if len(db.args) != 2 || db.args[0] != userID || db.args[1] != int64(9) {
		t.Fatalf("unexpected args %v", db.args)
	}
}

func TestRecentJobTouch_MissingJob(t *testing.T) {
	db := &execRecorder{err: &pgconn.PgError{Code: "23503"}}
	err := NewPostgresRecentJobRepository(db).Touch(context.Background(), uuid.New(), 9)
	if !errors.Is(err, job.ErrNotFound) {
		t.Fatalf("expected job.ErrNotFound, got %v", err)
	}

	db.err = errors.New("conn reset")
	if err := NewPostgresRecentJobRepository(db).Touch(context.Background(), uuid.New(), 9); err == nil || errors.Is(err, job.ErrNotFound) {
		t.Fatalf("expected raw error, got %v", err)
	}
}
