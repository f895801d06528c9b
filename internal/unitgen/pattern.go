package unitgen

import (
	"regexp"

	"condohub/server/internal/models"
)

// block, separator, floor (optionally suffixed, e.g. "3A"), separator, unit
var unitNamePattern = regexp.MustCompile(`^([A-Za-z]+|\d+)([-_. ])(\d+[A-Za-z]?)([-_. ])(\d+)$`)

type patternKey struct {
	separator  string
	blockStyle string
}

// DetectPattern inspects existing unit names and reports the dominant
// "<block><sep><floor><sep><unit>" layout. At least half of the names must
// share one layout, otherwise ErrNoPattern is returned.
func DetectPattern(names []string) (*models.DetectedPattern, error) {
	if len(names) == 0 {
		return nil, ErrNoPattern
	}

	counts := make(map[patternKey]int)
	examples := make(map[patternKey]string)
	var order []patternKey

	for _, name := range names {
		m := unitNamePattern.FindStringSubmatch(name)
		if m == nil || m[2] != m[4] {
			continue
		}
		key := patternKey{separator: m[2], blockStyle: models.BlockStyleNumber}
		if m[1][0] > '9' {
			key.blockStyle = models.BlockStyleLetter
		}
		if _, ok := counts[key]; !ok {
			order = append(order, key)
			examples[key] = name
		}
		counts[key]++
	}

	var best patternKey
	bestCount := 0
	for _, key := range order {
		if counts[key] > bestCount {
			best, bestCount = key, counts[key]
		}
	}

	if bestCount == 0 || bestCount*2 < len(names) {
		return nil, ErrNoPattern
	}

	return &models.DetectedPattern{
		Separator:  best.separator,
		BlockStyle: best.blockStyle,
		Example:    examples[best],
		Matched:    bestCount,
		Total:      len(names),
	}, nil
}
