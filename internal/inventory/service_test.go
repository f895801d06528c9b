package inventory

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"condohub/server/config"
	"condohub/server/internal/database"
	"condohub/server/internal/models"
	"condohub/server/internal/processor"
	"condohub/server/internal/unitgen"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func setupService(t *testing.T) (*Service, *database.Database) {
	db, err := database.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.BatchProcessing.MaxBatchSize = 100
	cfg.BatchProcessing.MaxRetries = 0

	logger := quietLogger()
	writer := processor.NewBatchWriter(db, cfg, logger)
	return NewService(db, writer, logger), db
}

func storeConfiguration(t *testing.T, db *database.Database, cfg models.PropertyConfiguration) string {
	require.NoError(t, db.CreateConfiguration(context.Background(), &cfg))
	return cfg.ID
}

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) Write(ctx context.Context, units []models.Unit) (processor.Result, error) {
	args := m.Called(ctx, units)
	return args.Get(0).(processor.Result), args.Error(1)
}

func TestGenerateFromConfiguration_Idempotent(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	id := storeConfiguration(t, db, models.PropertyConfiguration{
		CondoID:        "condo-1",
		Blocks:         2,
		FloorsPerBlock: 5,
		UnitsPerFloor:  3,
		NamingScheme:   models.DefaultNamingScheme(),
		ExcludedUnits:  []string{"013A01"},
	})

	res, err := svc.GenerateFromConfiguration(ctx, "condo-1", id)
	require.NoError(t, err)
	assert.Equal(t, 29, res.Created)
	assert.Equal(t, 0, res.Skipped)

	res, err = svc.GenerateFromConfiguration(ctx, "condo-1", id)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 29, res.Skipped)

	units, err := db.ListUnits(ctx, "condo-1")
	require.NoError(t, err)
	require.Len(t, units, 29)
	for _, u := range units {
		assert.NotEqual(t, "013A01", u.UnitNumber)
	}
}

func TestGenerateFromConfiguration_NotFound(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	id := storeConfiguration(t, db, models.PropertyConfiguration{
		CondoID: "condo-1", Blocks: 1, FloorsPerBlock: 1, UnitsPerFloor: 1,
		NamingScheme: models.DefaultNamingScheme(),
	})

	_, err := svc.GenerateFromConfiguration(ctx, "condo-1", "missing")
	assert.ErrorIs(t, err, database.ErrConfigurationNotFound)

	// another tenant's configuration id
	_, err = svc.GenerateFromConfiguration(ctx, "condo-2", id)
	assert.ErrorIs(t, err, database.ErrConfigurationNotFound)

	count, err := db.CountUnits(ctx, "condo-2")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGenerateFromConfiguration_InvalidStoredConfiguration(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	id := storeConfiguration(t, db, models.PropertyConfiguration{
		CondoID: "condo-1", Blocks: 0, FloorsPerBlock: 3, UnitsPerFloor: 2,
		NamingScheme: models.DefaultNamingScheme(),
	})

	_, err := svc.GenerateFromConfiguration(ctx, "condo-1", id)
	assert.ErrorIs(t, err, unitgen.ErrInvalidConfiguration)

	count, err := db.CountUnits(ctx, "condo-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGenerateFromConfiguration_BatchFailure(t *testing.T) {
	configs := &stubConfigs{cfg: &models.PropertyConfiguration{
		ID: "cfg-1", CondoID: "condo-1", Blocks: 1, FloorsPerBlock: 1, UnitsPerFloor: 2,
		NamingScheme: models.DefaultNamingScheme(),
	}}
	failure := &processor.BatchFailureError{Created: 0, Batch: 1, Err: errors.New("disk full")}

	writer := &MockWriter{}
	writer.On("Write", mock.Anything, mock.MatchedBy(func(units []models.Unit) bool { return len(units) == 2 })).
		Return(processor.Result{}, failure).Once()

	svc := NewService(configs, writer, quietLogger())
	_, err := svc.GenerateFromConfiguration(context.Background(), "condo-1", "cfg-1")

	assert.ErrorIs(t, err, processor.ErrBatchFailure)
	writer.AssertExpectations(t)
}

type stubConfigs struct {
	cfg *models.PropertyConfiguration
}

func (s *stubConfigs) GetConfiguration(_ context.Context, condoID, id string) (*models.PropertyConfiguration, error) {
	if s.cfg == nil || s.cfg.ID != id || s.cfg.CondoID != condoID {
		return nil, database.ErrConfigurationNotFound
	}
	return s.cfg, nil
}

func TestInsertUnits(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	res, err := svc.InsertUnits(ctx, "condo-1", []models.Unit{
		{ID: "client-id", CondoID: "condo-9", UnitNumber: "PH-1", FloorNumber: 20, UnitType: "penthouse"},
		{UnitNumber: "G-1", Status: "occupied", ResidentEmails: []string{"g1@example.com"}},
		{UnitNumber: "PH-1", FloorNumber: 21},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)

	units, err := db.ListUnits(ctx, "condo-1")
	require.NoError(t, err)
	require.Len(t, units, 2)

	byNumber := map[string]models.Unit{}
	for _, u := range units {
		byNumber[u.UnitNumber] = u
	}

	ph := byNumber["PH-1"]
	assert.Equal(t, "condo-1", ph.CondoID)
	assert.NotEqual(t, "client-id", ph.ID)
	assert.Equal(t, 20, ph.FloorNumber)
	assert.Equal(t, "penthouse", ph.UnitType)
	assert.Equal(t, models.UnitStatusVacant, ph.Status)
	assert.Equal(t, []string{}, ph.ResidentEmails)

	g := byNumber["G-1"]
	assert.Equal(t, models.DefaultUnitType, g.UnitType)
	assert.Equal(t, "occupied", g.Status)
	assert.Equal(t, []string{"g1@example.com"}, g.ResidentEmails)

	count, err := db.CountUnits(ctx, "condo-9")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestInsertUnits_MissingCondo(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.InsertUnits(context.Background(), "", []models.Unit{{UnitNumber: "1"}})
	assert.ErrorIs(t, err, unitgen.ErrInvalidConfiguration)
}

func TestPreview(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	units, err := svc.Preview("condo-1", models.PropertyConfiguration{
		Blocks: 1, FloorsPerBlock: 1, UnitsPerFloor: 2,
		NamingScheme: models.DefaultNamingScheme(),
	})
	require.NoError(t, err)
	assert.Len(t, units, 2)

	count, err := db.CountUnits(ctx, "condo-1")
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = svc.Preview("condo-1", models.PropertyConfiguration{NamingScheme: models.DefaultNamingScheme()})
	assert.ErrorIs(t, err, unitgen.ErrInvalidConfiguration)
}
