package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchemeType selects how unit names are rendered.
type SchemeType string

const (
	SchemeStandard        SchemeType = "standard"
	SchemeAnalyzeExisting SchemeType = "analyze_existing"
)

// Block styles reported by pattern detection.
const (
	BlockStyleLetter = "letter"
	BlockStyleNumber = "number"
)

// DetectedPattern describes the naming layout found in a property's existing
// unit names. Its presence switches an analyze_existing scheme to the
// "<block letter>-<floor>-<unit>" format.
type DetectedPattern struct {
	Separator  string `json:"separator"`
	BlockStyle string `json:"block_style"`
	Example    string `json:"example"`
	Matched    int    `json:"matched"`
	Total      int    `json:"total"`
}

// NamingScheme is the template that turns block, floor and unit indices into
// a unit identifier. Formats are digit-count templates: "##" pads to two
// characters, "" disables padding.
type NamingScheme struct {
	SchemeType      SchemeType       `json:"scheme_type" validate:"omitempty,oneof=standard analyze_existing"`
	BlockPrefix     string           `json:"block_prefix"`
	FloorPrefix     string           `json:"floor_prefix"`
	UnitPrefix      string           `json:"unit_prefix"`
	BlockFormat     string           `json:"block_format"`
	FloorFormat     string           `json:"floor_format"`
	UnitFormat      string           `json:"unit_format"`
	StartFloor      int              `json:"start_floor"`
	StartUnit       int              `json:"start_unit"`
	DetectedPattern *DetectedPattern `json:"detected_pattern,omitempty"`
}

// DefaultNamingScheme returns the scheme used for any field a caller leaves
// out: standard type, no prefixes, two-digit formats, numbering from floor 1
// and unit 1.
func DefaultNamingScheme() NamingScheme {
	return NamingScheme{
		SchemeType:  SchemeStandard,
		BlockFormat: "##",
		FloorFormat: "##",
		UnitFormat:  "##",
		StartFloor:  1,
		StartUnit:   1,
	}
}

// UnmarshalJSON decodes on top of DefaultNamingScheme so omitted keys keep
// their defaults while explicit zero values are preserved.
func (s *NamingScheme) UnmarshalJSON(data []byte) error {
	type plain NamingScheme
	p := plain(DefaultNamingScheme())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = NamingScheme(p)
	return nil
}

// PropertyConfiguration is the compact physical description of a property
// from which its unit inventory is generated. There is at most one per condo.
type PropertyConfiguration struct {
	ID             string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CondoID        string            `json:"condo_id" gorm:"not null;uniqueIndex"`
	Blocks         int               `json:"blocks" validate:"gt=0"`
	FloorsPerBlock int               `json:"floors_per_block" validate:"gt=0"`
	UnitsPerFloor  int               `json:"units_per_floor" validate:"gt=0"`
	NamingScheme   NamingScheme      `json:"naming_scheme" gorm:"serializer:json"`
	ExcludedUnits  []string          `json:"excluded_units" gorm:"serializer:json"`
	UnitTypes      map[string]string `json:"unit_types" gorm:"serializer:json"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// UnmarshalJSON applies the naming scheme defaults even when the
// naming_scheme key is absent.
func (c *PropertyConfiguration) UnmarshalJSON(data []byte) error {
	type plain PropertyConfiguration
	p := plain{NamingScheme: DefaultNamingScheme()}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = PropertyConfiguration(p)
	return nil
}

func (c *PropertyConfiguration) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ExcludedSet returns the excluded unit names as a lookup set.
func (c PropertyConfiguration) ExcludedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.ExcludedUnits))
	for _, name := range c.ExcludedUnits {
		set[name] = struct{}{}
	}
	return set
}

// TotalPositions is blocks * floors_per_block * units_per_floor, the upper
// bound on the number of generated units.
func (c PropertyConfiguration) TotalPositions() int {
	return c.Blocks * c.FloorsPerBlock * c.UnitsPerFloor
}
