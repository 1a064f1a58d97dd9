package logger_test

import (
	"os"

	"github.com/soundprediction/ontonav/pkg/logger"
)

func ExampleNew() {
	// Create a text logger at debug level
	log := logger.New(os.Stdout, "debug", "text")

	// Log with attributes
	log.Debug("resolving snapshot paths", "count", 3)
	log.Info("ontology loaded", "entities", 1284)
	log.Warn("collection empty", "collection", "adapters")
}

func ExampleNew_json() {
	// JSON output suits log aggregation pipelines
	log := logger.New(os.Stderr, "info", "json")

	log.Info("traversal finished", "nodes", 42, "max_depth", 2)
	log.Error("snapshot parse failed", "path", "data/risks.yaml")
}
