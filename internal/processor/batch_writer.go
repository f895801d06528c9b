package processor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"condohub/server/config"
	"condohub/server/internal/models"
)

const DefaultBatchSize = 100

var ErrBatchFailure = errors.New("unit batch persistence failed")

// UnitStore persists units keyed by (condo_id, unit_number), ignoring rows
// that already exist, and reports how many rows it inserted.
type UnitStore interface {
	UpsertUnits(ctx context.Context, units []models.Unit) (int64, error)
}

// Result summarises a completed write.
type Result struct {
	Created int
	Skipped int
	Batches int
}

// BatchFailureError reports a write that stopped part way. Batches before
// Batch stay committed.
type BatchFailureError struct {
	// Units inserted by the batches that committed
	Created int
	// 1-based number of the batch that failed
	Batch int
	Err   error
}

func (e *BatchFailureError) Error() string {
	return fmt.Sprintf("batch %d failed after %d units created: %v", e.Batch, e.Created, e.Err)
}

func (e *BatchFailureError) Unwrap() []error {
	return []error{ErrBatchFailure, e.Err}
}

// BatchWriter writes units to a UnitStore in sequential batches
type BatchWriter struct {
	store  UnitStore
	logger *logrus.Logger
	config *config.Config
}

// NewBatchWriter creates a new batch writer instance
func NewBatchWriter(store UnitStore, config *config.Config, logger *logrus.Logger) *BatchWriter {
	return &BatchWriter{
		store:  store,
		config: config,
		logger: logger,
	}
}

// Write persists units in order. The context is checked before every batch,
// so cancellation never interrupts a batch that has started.
func (w *BatchWriter) Write(ctx context.Context, units []models.Unit) (Result, error) {
	var res Result

	size := w.config.BatchProcessing.MaxBatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}

	for batch := range slices.Chunk(units, size) {
		number := res.Batches + 1

		if err := ctx.Err(); err != nil {
			return res, &BatchFailureError{Created: res.Created, Batch: number, Err: err}
		}

		created, err := w.writeBatch(ctx, batch)
		if err != nil {
			w.logger.WithFields(logrus.Fields{
				"batch":         number,
				"units_created": res.Created,
			}).WithError(err).Error("Giving up on unit batch")
			return res, &BatchFailureError{Created: res.Created, Batch: number, Err: err}
		}

		res.Created += created
		res.Skipped += len(batch) - created
		res.Batches++
	}

	return res, nil
}

// writeBatch upserts a single batch, retrying on failure. Retries are safe
// because the upsert ignores rows that already exist.
func (w *BatchWriter) writeBatch(ctx context.Context, batch []models.Unit) (int, error) {
	maxRetries := w.config.BatchProcessing.MaxRetries
	delay := w.config.BatchProcessing.RetryDelayDuration()

	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			w.logger.Infof("Retrying unit batch, attempt %d of %d", attempt, maxRetries)
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(delay):
			}
		}

		var created int64
		created, err = w.store.UpsertUnits(ctx, batch)
		if err == nil {
			w.logger.Debugf("Wrote batch of %d units, %d created", len(batch), created)
			return int(created), nil
		}

		w.logger.Errorf("Unit batch failed: %v", err)
	}

	return 0, fmt.Errorf("failed to write batch after %d attempts: %w", maxRetries+1, err)
}
