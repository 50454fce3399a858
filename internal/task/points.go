package task

import (
	"errors"
	"fmt"
	"math"
)

// Score ranges.
const (
	MinImportance = 0
	MaxImportance = 50
	MinComplexity = 1
	MaxComplexity = 9
	MaxPoints     = 500
)

// Defaults assigned to a freshly captured task. A dateless task that still
// carries them is "collected".
const (
	DefaultImportance = 0
	DefaultComplexity = 3
)

var (
	ErrImportanceRange = errors.New("importance out of range")
	ErrComplexityRange = errors.New("complexity out of range")
)

// CalculatePoints returns round(10 * importance / complexity), rounding
// halves away from zero. A complexity of 0 scores 0. The result is not
// clamped; see ClampPoints.
func CalculatePoints(importance, complexity int) int {
	if complexity == 0 {
		return 0
	}
	return int(math.Round(10 * float64(importance) / float64(complexity)))
}

// ClampPoints bounds p to [0, MaxPoints].
func ClampPoints(p int) int {
	return min(max(p, 0), MaxPoints)
}

// Score computes the stored points value for a task.
func Score(importance, complexity int) int {
	return ClampPoints(CalculatePoints(importance, complexity))
}

// ValidateScore checks importance and complexity against their ranges.
func ValidateScore(importance, complexity int) error {
	if importance < MinImportance || importance > MaxImportance {
		return fmt.Errorf("%w: %d (want %d-%d)", ErrImportanceRange, importance, MinImportance, MaxImportance)
	}
	if complexity < MinComplexity || complexity > MaxComplexity {
		return fmt.Errorf("%w: %d (want %d-%d)", ErrComplexityRange, complexity, MinComplexity, MaxComplexity)
	}
	return nil
}
