package service

import (
	"fmt"
	"math"
	"strings"
)

// Calibrator re-derives a trustworthy percentage from a parsed review. The
// model graded its own free-text judgments, so the self-reported number is
// not trusted: the calibrator cross-checks the content of those judgments for
// known red flags and discounts the score accordingly. The judgments' text is
// trusted; the judgments' number is not.
type Calibrator struct {
	valueFlags      []string
	suggestionFlags []string
	vagueFlags      []string
}

// NewCalibrator creates a calibrator with the default red-flag keyword sets.
func NewCalibrator() *Calibrator {
	return &Calibrator{
		valueFlags:      []string{"ambiguo", "incompleto", "baja", "no"},
		suggestionFlags: []string{"reemplazar", "no medible", "ajustar", "reformule"},
		vagueFlags:      []string{"rápido", "eficiente", "adecuado"},
	}
}

// Per-attribute penalties. Cumulative within an attribute, summed across
// attributes, averaged over the number of counted attributes.
const (
	penaltyFlaggedValue      = 20
	penaltyFlaggedSuggestion = 15
	penaltyVagueSuggestion   = 20
)

// Calibrate discounts base by the average red-flag penalty across the
// review's attributes. Attributes that are not mappings are skipped and do
// not count toward the divisor. Zero counted attributes means no trustworthy
// signal: the result is 0 regardless of base. The result lies in [0, 100] and
// is rounded to 2 decimals; for a fixed base it is monotonic non-increasing
// in the number of matching keywords.
func (c *Calibrator) Calibrate(analysis map[string]any, base float64) float64 {
	totalPenalty := 0.0
	attrCount := 0

	for _, raw := range analysis {
		attr, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		attrCount++

		value := strings.ToLower(stringify(firstOf(attr, "valor", "value")))
		suggestion := strings.ToLower(stringify(firstOf(attr, "sugerencia", "suggestion")))

		if containsAny(value, c.valueFlags) {
			totalPenalty += penaltyFlaggedValue
		}
		if containsAny(suggestion, c.suggestionFlags) {
			totalPenalty += penaltyFlaggedSuggestion
		}
		if containsAny(suggestion, c.vagueFlags) {
			totalPenalty += penaltyVagueSuggestion
		}
	}

	if attrCount == 0 {
		return 0
	}

	calibrated := base - totalPenalty/float64(attrCount)
	if calibrated < 0 {
		calibrated = 0
	}
	return round2(calibrated)
}

func firstOf(attr map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := attr[k]; ok {
			return v
		}
	}
	return nil
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
