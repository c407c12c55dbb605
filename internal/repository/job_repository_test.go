package repository

import (
	"strings"
	"testing"
	"time"
)

func TestBuildJobWhere_Empty(t *testing.T) {
	where, args := buildJobWhere(JobListFilter{Limit: 10})
	if where != "" || len(args) != 0 {
		t.Fatalf("expected no clause, got %q %v", where, args)
	}
}

func TestBuildJobWhere_AllFilters(t *testing.T) {
	salary := 1000.0
	minSalary := 500.0
	after := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	where, args := buildJobWhere(JobListFilter{
		SearchTerms:  []string{"go", " ", "50%_off"},
		Title:        "Engineer",
		JobTypes:     []string{"remote", "hybrid"},
		Location:     "Almaty",
		Salary:       &salary,
		Currency:     "USD",
		MinSalary:    &minSalary,
		CreatedAfter: &after,
	})

	want := " WHERE (title ILIKE $1 OR description ILIKE $1 OR company ILIKE $1)" +
		" AND (title ILIKE $2 OR description ILIKE $2 OR company ILIKE $2)" +
		" AND title ILIKE $3 AND job_type = ANY($4) AND location = $5" +
		" AND salary = $6 AND currency = $7 AND salary >= $8 AND created_at >= $9"
	if where != want {
		t.Fatalf("unexpected where:\n got %s\nwant %s", where, want)
	}
	if len(args) != 9 {
		t.Fatalf("expected 9 args, got %d", len(args))
	}
	if args[0] != "%go%" {
		t.Fatalf("unexpected first pattern %v", args[0])
	}
	if args[1] != `%50\%\_off%` {
		t.Fatalf("expected escaped pattern, got %v", args[1])
	}
	types, ok := args[3].([]string)
	if !ok || strings.Join(types, ",") != "remote,hybrid" {
		t.Fatalf("unexpected job types arg %v", args[3])
	}
	if args[7] != 500.0 {
		t.Fatalf("unexpected min salary arg %v", args[7])
	}
}
