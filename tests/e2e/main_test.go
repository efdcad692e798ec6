package e2e

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/adactin-qa/hotelsuite/internal/config"
	"github.com/adactin-qa/hotelsuite/tests/e2e/helpers"
)

func TestMain(m *testing.M) {
	dir := os.Getenv("HOTELSUITE_CONFIG_DIR")
	if dir == "" {
		dir = filepath.Join("..", "..")
	}
	if err := config.Load(dir); err != nil {
		log.Fatalf("[e2e] %v", err)
	}

	code := m.Run()

	resultsDir := config.Get().ResultsDir
	if err := os.MkdirAll(resultsDir, 0755); err == nil {
		if err := prometheus.WriteToTextfile(filepath.Join(resultsDir, "api-capture.prom"), helpers.Registry); err != nil {
			log.Printf("[e2e] failed to write capture metrics: %v", err)
		}
	}
	os.Exit(code)
}
