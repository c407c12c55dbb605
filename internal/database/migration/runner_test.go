package migration

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadMigrations_SortsAndSkipsUnrelatedFiles(t *testing.T) {
	src := fstest.MapFS{
		"V2__second.sql": {Data: []byte("SELECT 2;")},
		"V1__first.sql":  {Data: []byte("SELECT 1;")},
		"README.md":      {Data: []byte("notes")},
	}

	migs, err := loadMigrations(src)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[1].Version != 2 {
		t.Fatalf("unexpected order: %d, %d", migs[0].Version, migs[1].Version)
	}
	if migs[0].Name != "first" || migs[0].Checksum == "" {
		t.Fatalf("unexpected migration %+v", migs[0])
	}
}

func TestLoadMigrations_RejectsEmptyAndDuplicate(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{"V1__empty.sql": {Data: []byte("  \n")}})
	if err == nil || !strings.Contains(err.Error(), "empty migration") {
		t.Fatalf("expected empty migration error, got %v", err)
	}

	_, err = loadMigrations(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 1;")},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	src, err := Runner{}.source()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	migs, err := loadMigrations(src)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) == 0 {
		t.Fatalf("expected embedded migrations")
	}
	if _, err := fs.Stat(src, migs[0].Filename); err != nil {
		t.Fatalf("stat %s: %v", migs[0].Filename, err)
	}
	for _, table := range []string{"jobs", "profiles", "work_experiences", "educations", "saved_jobs", "recent_jobs"} {
		if !strings.Contains(migs[0].SQL, "CREATE TABLE IF NOT EXISTS "+table) {
			t.Fatalf("expected table %s in initial migration", table)
		}
	}
}

func TestPending_SkipsAppliedAndDetectsEdits(t *testing.T) {
	migs := []Migration{
		{Version: 1, Name: "init", Checksum: "a"},
		{Version: 2, Name: "more", Checksum: "b"},
	}

	todo, err := pending(migs, map[int64]appliedMigration{1: {Version: 1, Checksum: "a"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(todo) != 1 || todo[0].Version != 2 {
		t.Fatalf("expected only version 2 pending, got %+v", todo)
	}

	_, err = pending(migs, map[int64]appliedMigration{1: {Version: 1, Checksum: "edited"}})
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}
