// Package telemetry records query measurements to Parquet files for offline
// analysis.
package telemetry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
)

// DefaultBatchSize is the number of records buffered before a flush.
const DefaultBatchSize = 100

// QueryRecord is a single query measurement for Parquet storage
type QueryRecord struct {
	ID                     string    `parquet:"id"`
	Timestamp              time.Time `parquet:"timestamp"`
	StartType              string    `parquet:"start_type"`
	StartID                string    `parquet:"start_id"`
	Pattern                string    `parquet:"pattern"`
	CacheHit               bool      `parquet:"cache_hit"`
	MaxDepth               int       `parquet:"max_depth"`
	NodesReturned          int       `parquet:"nodes_returned"`
	RelationshipsTraversed int       `parquet:"relationships_traversed"`
	DurationMicros         int64     `parquet:"duration_micros"`
}

// Recorder buffers query records and writes them to timestamped Parquet
// files in batches. Recording never fails the query path: flush errors are
// logged and the records dropped.
type Recorder struct {
	outputDir string
	logger    *slog.Logger

	mu        sync.Mutex
	buffer    []QueryRecord
	batchSize int
}

// NewRecorder creates a Recorder writing to outputDir. A batchSize of 0 or
// less uses DefaultBatchSize.
func NewRecorder(outputDir string, batchSize int, logger *slog.Logger) (*Recorder, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create telemetry directory: %w", err)
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Recorder{
		outputDir: outputDir,
		logger:    logger,
		buffer:    make([]QueryRecord, 0, batchSize),
		batchSize: batchSize,
	}, nil
}

// Record buffers one measurement, assigning an id and timestamp when unset,
// and flushes once the batch fills.
func (r *Recorder) Record(rec QueryRecord) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.buffer = append(r.buffer, rec)
	if len(r.buffer) >= r.batchSize {
		if err := r.flush(); err != nil {
			r.logger.Warn("failed to flush telemetry batch", "error", err)
		}
	}
}

// Flush writes any buffered records out immediately.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flush()
}

// Close flushes remaining records. The Recorder stays usable afterwards, but
// callers should treat Close as the end of recording.
func (r *Recorder) Close() error {
	return r.Flush()
}

// flush writes the current buffer to a new Parquet file.
// Caller must hold the lock.
func (r *Recorder) flush() error {
	if len(r.buffer) == 0 {
		return nil
	}

	filename := fmt.Sprintf("query_telemetry_%s_%d.parquet",
		time.Now().Format("20060102_150405"), time.Now().UnixNano())
	path := filepath.Join(r.outputDir, filename)

	if err := parquet.WriteFile(path, r.buffer); err != nil {
		return fmt.Errorf("failed to write telemetry parquet file: %w", err)
	}

	r.buffer = r.buffer[:0]
	return nil
}
