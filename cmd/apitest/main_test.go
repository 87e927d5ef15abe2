package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/zapponejosh/igbo-calendar-api/internal/api"
	"github.com/zapponejosh/igbo-calendar-api/internal/config"
	"github.com/zapponejosh/igbo-calendar-api/internal/database"
	"github.com/zapponejosh/igbo-calendar-api/internal/logger"
)

func TestRunnerAgainstServer(t *testing.T) {
	log := logger.Discard()

	db, err := database.Open(database.DefaultConfig(":memory:"), log)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if _, err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{Env: config.EnvDevelopment, APIKey: "smoke-key", LogLevel: "error", LogFormat: "text"}
	srv := httptest.NewServer(api.SetupRoutes(api.NewHandlers(db, nil, cfg, log), cfg, log))
	defer srv.Close()

	var out bytes.Buffer
	runner := NewTestRunner(srv.URL, cfg.APIKey, &out)
	runner.Run()

	if runner.errorCount != 0 {
		t.Errorf("smoke test reported %d failure(s):\n%s", runner.errorCount, out.String())
	}
	if runner.successCount == 0 {
		t.Error("smoke test recorded no passing checks")
	}
}
