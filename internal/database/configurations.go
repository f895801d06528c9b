package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"condohub/server/internal/models"
)

var (
	ErrConfigurationNotFound = errors.New("configuration not found")
	ErrConfigurationExists   = errors.New("configuration already exists for condo")
)

// CreateConfiguration stores the property configuration of a condo. A condo
// has at most one.
func (d *Database) CreateConfiguration(ctx context.Context, cfg *models.PropertyConfiguration) error {
	_, err := d.GetConfigurationByCondo(ctx, cfg.CondoID)
	switch {
	case err == nil:
		return ErrConfigurationExists
	case !errors.Is(err, ErrConfigurationNotFound):
		return err
	}

	if err := d.db.WithContext(ctx).Create(cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConfigurationExists
		}
		return fmt.Errorf("failed to create configuration: %w", err)
	}
	return nil
}

// GetConfiguration looks up a configuration by id within a condo. A
// configuration that exists for another condo is reported as not found.
func (d *Database) GetConfiguration(ctx context.Context, condoID, id string) (*models.PropertyConfiguration, error) {
	var cfg models.PropertyConfiguration
	err := d.db.WithContext(ctx).Where("id = ? AND condo_id = ?", id, condoID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConfigurationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get configuration: %w", err)
	}
	return &cfg, nil
}

func (d *Database) GetConfigurationByCondo(ctx context.Context, condoID string) (*models.PropertyConfiguration, error) {
	var cfg models.PropertyConfiguration
	err := d.db.WithContext(ctx).Where("condo_id = ?", condoID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConfigurationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get configuration: %w", err)
	}
	return &cfg, nil
}
