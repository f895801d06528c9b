package processor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"condohub/server/internal/database"
	"condohub/server/internal/models"
	"condohub/server/internal/unitgen"
)

func setupTestDB(t *testing.T) *database.Database {
	db, err := database.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBatchWritingIntegration(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	cfg := models.PropertyConfiguration{
		Blocks:         5,
		FloorsPerBlock: 10,
		UnitsPerFloor:  5,
		NamingScheme:   models.DefaultNamingScheme(),
	}
	units, err := unitgen.Generate("condo-1", cfg)
	require.NoError(t, err)
	require.Len(t, units, 250)

	writer := NewBatchWriter(db, testConfig(100, 2), quietLogger())

	res, err := writer.Write(ctx, units)
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 250, Skipped: 0, Batches: 3}, res)

	count, err := db.CountUnits(ctx, "condo-1")
	require.NoError(t, err)
	assert.Equal(t, int64(250), count)

	// Generating again creates nothing new
	res, err = writer.Write(ctx, units)
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 0, Skipped: 250, Batches: 3}, res)

	count, err = db.CountUnits(ctx, "condo-1")
	require.NoError(t, err)
	assert.Equal(t, int64(250), count)
}

func TestBatchWritingIntegration_CanceledKeepsCommittedBatches(t *testing.T) {
	db := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &cancelAfterFirst{Database: db, cancel: cancel}
	writer := NewBatchWriter(store, testConfig(10, 0), quietLogger())

	_, err := writer.Write(ctx, makeUnits(30))
	require.ErrorIs(t, err, context.Canceled)

	count, err := db.CountUnits(context.Background(), "condo-1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), count)
}

type cancelAfterFirst struct {
	*database.Database
	cancel context.CancelFunc
}

func (c *cancelAfterFirst) UpsertUnits(ctx context.Context, units []models.Unit) (int64, error) {
	created, err := c.Database.UpsertUnits(ctx, units)
	c.cancel()
	return created, err
}
