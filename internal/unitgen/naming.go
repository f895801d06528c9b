package unitgen

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"condohub/server/internal/models"
)

// relabeledFloor is the floor that is never displayed by its number.
const relabeledFloor = 4

// FloorDisplay renders a physical floor number using the regional
// convention: floor 4 is shown as "3A", every other floor keeps its number.
// Floors above 4 are not shifted.
func FloorDisplay(actualFloor int) string {
	if actualFloor == relabeledFloor {
		return "3A"
	}
	return strconv.Itoa(actualFloor)
}

// BlockLetter maps a 1-based block index to A, B, C ... Only 1-26 have a
// single-letter label; callers validate the range.
func BlockLetter(blockIdx int) string {
	return string(rune('A' + blockIdx - 1))
}

// BlockLabel is the zero-padded block segment stored as block_number.
func BlockLabel(blockIdx int, scheme models.NamingScheme) string {
	return pad(strconv.Itoa(blockIdx), formatWidth(scheme.BlockFormat))
}

// UnitName builds the identifier for the unitIdx-th position (1-based) on a
// floor whose display label is floorDisplay.
func UnitName(blockIdx int, floorDisplay string, unitIdx int, scheme models.NamingScheme) string {
	unitNumber := scheme.StartUnit + unitIdx - 1

	if scheme.SchemeType == models.SchemeAnalyzeExisting && scheme.DetectedPattern != nil {
		return BlockLetter(blockIdx) + "-" + floorDisplay + "-" + strconv.Itoa(unitNumber)
	}

	var b strings.Builder
	b.WriteString(scheme.BlockPrefix)
	b.WriteString(BlockLabel(blockIdx, scheme))
	b.WriteString(scheme.FloorPrefix)
	b.WriteString(pad(floorDisplay, formatWidth(scheme.FloorFormat)))
	b.WriteString(scheme.UnitPrefix)
	b.WriteString(pad(strconv.Itoa(unitNumber), formatWidth(scheme.UnitFormat)))
	return b.String()
}

func formatWidth(format string) int {
	return utf8.RuneCountInString(format)
}

// pad left-pads s with zeros up to width characters.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat("0", width-n) + s
}
