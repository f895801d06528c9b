package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"condohub/server/internal/database"
	"condohub/server/internal/inventory"
	"condohub/server/internal/models"
	"condohub/server/internal/processor"
	"condohub/server/internal/unitgen"
)

type Handler struct {
	db        *database.Database
	inventory *inventory.Service
	logger    *logrus.Logger
}

// GenerateUnitsRequest asks for units either from a stored configuration or
// from an explicit list. Exactly one of the two must be set.
type GenerateUnitsRequest struct {
	ConfigurationID string        `json:"configuration_id"`
	Units           []models.Unit `json:"units" validate:"dive"`
}

type GenerateUnitsResponse struct {
	UnitsCreated int    `json:"units_created"`
	UnitsSkipped int    `json:"units_skipped"`
	Message      string `json:"message"`
}

type AnalyzeUnitsRequest struct {
	UnitNames []string `json:"unit_names" validate:"required,min=1"`
}

type UnitsResponse struct {
	Units []models.Unit `json:"units"`
	Count int           `json:"count"`
}

func NewHandler(db *database.Database, inventory *inventory.Service, logger *logrus.Logger) *Handler {
	return &Handler{
		db:        db,
		inventory: inventory,
		logger:    logger,
	}
}

func (h *Handler) Health(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("Database ping failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) CreateConfiguration(c *gin.Context) {
	condoID := c.Param("condo_id")

	var cfg models.PropertyConfiguration
	if err := c.ShouldBindJSON(&cfg); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidPayload, "Invalid request body", nil)
		return
	}
	cfg.ID = ""
	cfg.CondoID = condoID

	if err := unitgen.Validate(condoID, cfg); err != nil {
		h.handleError(c, err, "Failed to validate configuration")
		return
	}

	if err := h.db.CreateConfiguration(c.Request.Context(), &cfg); err != nil {
		h.handleError(c, err, "Failed to create configuration")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"condo_id":         condoID,
		"configuration_id": cfg.ID,
	}).Info("Created property configuration")

	c.JSON(http.StatusCreated, cfg)
}

func (h *Handler) GetConfiguration(c *gin.Context) {
	cfg, err := h.db.GetConfiguration(c.Request.Context(), c.Param("condo_id"), c.Param("configuration_id"))
	if err != nil {
		h.handleError(c, err, "Failed to get configuration")
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) GenerateUnits(c *gin.Context) {
	condoID := c.Param("condo_id")

	var req GenerateUnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidPayload, "Invalid request body", nil)
		return
	}

	hasConfig := req.ConfigurationID != ""
	hasUnits := len(req.Units) > 0
	if hasConfig == hasUnits {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidPayload,
			"Provide either configuration_id or units", nil)
		return
	}

	if err := validate.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidation, "Invalid units", validationDetails(err))
		return
	}

	if p, ok := PrincipalFrom(c); ok {
		h.logger.WithFields(logrus.Fields{
			"condo_id": condoID,
			"role":     p.Role,
		}).Debug("Unit generation requested")
	}

	var (
		res  processor.Result
		err  error
		verb string
	)
	if hasConfig {
		res, err = h.inventory.GenerateFromConfiguration(c.Request.Context(), condoID, req.ConfigurationID)
		verb = "Generated"
	} else {
		res, err = h.inventory.InsertUnits(c.Request.Context(), condoID, req.Units)
		verb = "Imported"
	}
	if err != nil {
		h.handleError(c, err, "Failed to persist units")
		return
	}

	c.JSON(http.StatusCreated, GenerateUnitsResponse{
		UnitsCreated: res.Created,
		UnitsSkipped: res.Skipped,
		Message:      fmt.Sprintf("%s %d units, %d already existed", verb, res.Created, res.Skipped),
	})
}

func (h *Handler) PreviewUnits(c *gin.Context) {
	var cfg models.PropertyConfiguration
	if err := c.ShouldBindJSON(&cfg); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidPayload, "Invalid request body", nil)
		return
	}

	units, err := h.inventory.Preview(c.Param("condo_id"), cfg)
	if err != nil {
		h.handleError(c, err, "Failed to preview units")
		return
	}

	c.JSON(http.StatusOK, UnitsResponse{Units: units, Count: len(units)})
}

func (h *Handler) AnalyzeUnits(c *gin.Context) {
	var req AnalyzeUnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidPayload, "Invalid request body", nil)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidation, "Invalid unit names", validationDetails(err))
		return
	}

	pattern, err := unitgen.DetectPattern(req.UnitNames)
	if errors.Is(err, unitgen.ErrNoPattern) {
		respondError(c, http.StatusUnprocessableEntity, ErrCodeNoPattern, "No naming pattern detected", nil)
		return
	}
	if err != nil {
		h.handleError(c, err, "Failed to analyze unit names")
		return
	}

	c.JSON(http.StatusOK, pattern)
}

func (h *Handler) ListUnits(c *gin.Context) {
	units, err := h.db.ListUnits(c.Request.Context(), c.Param("condo_id"))
	if err != nil {
		h.handleError(c, err, "Failed to list units")
		return
	}
	if units == nil {
		units = []models.Unit{}
	}

	c.JSON(http.StatusOK, UnitsResponse{Units: units, Count: len(units)})
}
