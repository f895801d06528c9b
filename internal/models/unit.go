package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UnitStatusVacant = "vacant"
	DefaultUnitType  = "residential"
)

// Unit is a single addressable unit of a condominium, either produced by the
// generation engine or imported directly. UnitNumber is the natural key within
// a condo.
type Unit struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CondoID        string    `json:"condo_id" gorm:"not null;uniqueIndex:idx_units_condo_unit"`
	UnitNumber     string    `json:"unit_number" gorm:"not null;uniqueIndex:idx_units_condo_unit" validate:"required"`
	FloorNumber    int       `json:"floor_number"`
	BlockNumber    string    `json:"block_number"`
	UnitType       string    `json:"unit_type"`
	Status         string    `json:"status"`
	Excluded       bool      `json:"excluded"`
	ResidentEmails []string  `json:"resident_emails" gorm:"serializer:json" validate:"dive,email"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

// BeforeCreate assigns an id to units that do not carry one yet. Generation
// never sets ids so that its output stays deterministic.
func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
