package database

import (
	"context"
	"fmt"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"condohub/server/internal/models"
)

// UpsertUnits inserts units in a single transaction, leaving any row whose
// (condo_id, unit_number) already exists untouched. It returns the number of
// rows actually inserted.
func (d *Database) UpsertUnits(ctx context.Context, units []models.Unit) (int64, error) {
	if len(units) == 0 {
		return 0, nil
	}

	// ids are assigned on the copy so the caller's units stay as generated
	rows := slices.Clone(units)

	var created int64
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "condo_id"}, {Name: "unit_number"}},
			DoNothing: true,
		}).Create(&rows)
		if result.Error != nil {
			return fmt.Errorf("failed to upsert units: %w", result.Error)
		}
		created = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	return created, nil
}

// ListUnits returns the units of a condo ordered by block, floor and unit
// number.
func (d *Database) ListUnits(ctx context.Context, condoID string) ([]models.Unit, error) {
	var units []models.Unit
	err := d.db.WithContext(ctx).
		Where("condo_id = ?", condoID).
		Order("block_number, floor_number, unit_number").
		Find(&units).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	return units, nil
}

func (d *Database) CountUnits(ctx context.Context, condoID string) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.Unit{}).Where("condo_id = ?", condoID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count units: %w", err)
	}
	return count, nil
}
