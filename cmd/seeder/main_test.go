package main

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database/seeder"
)

func TestSeedDatabase_ReturnsConnectError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var buf bytes.Buffer
	err := seedDatabase(ctx, config.DatabaseConfig{
		DBHost:         "127.0.0.1",
		DBPort:         "1",
		DBName:         "jobboard",
		DBUser:         "jobboard",
		DBSSLMode:      "disable",
		ConnectTimeout: time.Second,
	}, seeder.Options{Jobs: 1}, log.New(&buf, "", 0))

	if err == nil || !strings.Contains(err.Error(), "connect database") {
		t.Fatalf("expected connect error, got %v", err)
	}
	if strings.Contains(buf.String(), "done") {
		t.Fatalf("unexpected completion log %q", buf.String())
	}
}
