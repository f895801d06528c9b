// Package inventory ties configuration lookup, unit generation and batch
// persistence together for a single condo.
package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"condohub/server/internal/models"
	"condohub/server/internal/processor"
	"condohub/server/internal/unitgen"
)

// ConfigurationStore resolves configurations within a tenant.
type ConfigurationStore interface {
	GetConfiguration(ctx context.Context, condoID, id string) (*models.PropertyConfiguration, error)
}

// Writer persists units; *processor.BatchWriter satisfies it.
type Writer interface {
	Write(ctx context.Context, units []models.Unit) (processor.Result, error)
}

type Service struct {
	configs ConfigurationStore
	writer  Writer
	logger  *logrus.Logger
}

func NewService(configs ConfigurationStore, writer Writer, logger *logrus.Logger) *Service {
	return &Service{
		configs: configs,
		writer:  writer,
		logger:  logger,
	}
}

// GenerateFromConfiguration expands the stored configuration of a condo and
// persists the resulting units. Nothing is written when the configuration
// cannot be found or fails validation.
func (s *Service) GenerateFromConfiguration(ctx context.Context, condoID, configurationID string) (processor.Result, error) {
	log := s.logger.WithFields(logrus.Fields{
		"condo_id":         condoID,
		"configuration_id": configurationID,
	})

	cfg, err := s.configs.GetConfiguration(ctx, condoID, configurationID)
	if err != nil {
		log.WithError(err).Warn("Configuration lookup failed")
		return processor.Result{}, err
	}

	units, err := unitgen.Generate(condoID, *cfg)
	if err != nil {
		log.WithError(err).Warn("Rejected property configuration")
		return processor.Result{}, err
	}
	log.WithField("units", len(units)).Info("Generated unit inventory")

	res, err := s.writer.Write(ctx, units)
	if err != nil {
		log.WithError(err).WithField("units_created", res.Created).Error("Unit persistence stopped")
		return res, err
	}

	log.WithFields(logrus.Fields{
		"units_created": res.Created,
		"units_skipped": res.Skipped,
	}).Info("Persisted unit inventory")
	return res, nil
}

// InsertUnits persists caller-supplied units without generation. Every unit
// is moved into condoID and gets a fresh id, missing fields get their
// defaults and repeated unit numbers keep the first occurrence.
func (s *Service) InsertUnits(ctx context.Context, condoID string, units []models.Unit) (processor.Result, error) {
	if strings.TrimSpace(condoID) == "" {
		return processor.Result{}, &unitgen.InvalidConfigurationError{
			Fields: []unitgen.FieldError{{Field: "condo_id", Reason: "is required"}},
		}
	}

	prepared := make([]models.Unit, len(units))
	for i, u := range units {
		prepared[i] = withDefaults(condoID, u)
	}
	prepared = unitgen.Dedupe(prepared)

	log := s.logger.WithFields(logrus.Fields{"condo_id": condoID, "units": len(prepared)})

	res, err := s.writer.Write(ctx, prepared)
	if err != nil {
		log.WithError(err).WithField("units_created", res.Created).Error("Unit import stopped")
		return res, err
	}

	log.WithField("units_created", res.Created).Info("Imported units")
	return res, nil
}

// Preview returns the units cfg would generate without persisting them.
func (s *Service) Preview(condoID string, cfg models.PropertyConfiguration) ([]models.Unit, error) {
	units, err := unitgen.Generate(condoID, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to preview units: %w", err)
	}
	return units, nil
}

func withDefaults(condoID string, u models.Unit) models.Unit {
	u.ID = ""
	u.CondoID = condoID
	if u.Status == "" {
		u.Status = models.UnitStatusVacant
	}
	if u.UnitType == "" {
		u.UnitType = models.DefaultUnitType
	}
	if u.ResidentEmails == nil {
		u.ResidentEmails = []string{}
	}
	return u
}
