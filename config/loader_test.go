package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"condohub/server/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPropertyConfigFile_YAML(t *testing.T) {
	path := writeFile(t, "tower.yaml", `
blocks: 2
floors_per_block: 6
units_per_floor: 4
naming_scheme:
  block_prefix: "T"
  unit_format: "###"
excluded_units: ["T013A001", "T02"]
unit_types:
  "T010101": commercial
`)

	cfg, err := LoadPropertyConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Blocks)
	assert.Equal(t, 6, cfg.FloorsPerBlock)
	assert.Equal(t, 4, cfg.UnitsPerFloor)
	assert.Equal(t, []string{"T013A001", "T02"}, cfg.ExcludedUnits)
	assert.Equal(t, map[string]string{"T010101": "commercial"}, cfg.UnitTypes)

	// explicit values win, omitted ones keep their defaults
	assert.Equal(t, "T", cfg.NamingScheme.BlockPrefix)
	assert.Equal(t, "###", cfg.NamingScheme.UnitFormat)
	assert.Equal(t, "##", cfg.NamingScheme.FloorFormat)
	assert.Equal(t, models.SchemeStandard, cfg.NamingScheme.SchemeType)
	assert.Equal(t, 1, cfg.NamingScheme.StartFloor)
	assert.Equal(t, 1, cfg.NamingScheme.StartUnit)
}

func TestLoadPropertyConfigFile_JSONWithoutScheme(t *testing.T) {
	path := writeFile(t, "block.json", `{"blocks": 1, "floors_per_block": 2, "units_per_floor": 3}`)

	cfg, err := LoadPropertyConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, models.DefaultNamingScheme(), cfg.NamingScheme)
}

func TestLoadPropertyConfigFile_ZeroStartFloor(t *testing.T) {
	path := writeFile(t, "ground.yml", "blocks: 1\nfloors_per_block: 1\nunits_per_floor: 1\nnaming_scheme:\n  start_floor: 0\n")

	cfg, err := LoadPropertyConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.NamingScheme.StartFloor)
}

func TestLoadPropertyConfigFile_Errors(t *testing.T) {
	_, err := LoadPropertyConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read property config")

	_, err = LoadPropertyConfigFile(writeFile(t, "layout.toml", "blocks = 1"))
	assert.ErrorContains(t, err, "unsupported property config format")

	_, err = LoadPropertyConfigFile(writeFile(t, "broken.yaml", "blocks: [1, 2"))
	assert.ErrorContains(t, err, "failed to parse property config")

	_, err = LoadPropertyConfigFile(writeFile(t, "wrong.json", `{"blocks": "two"}`))
	assert.ErrorContains(t, err, "failed to parse property config")
}
