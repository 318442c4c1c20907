package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func attr(value any, suggestion string) map[string]any {
	return map[string]any{"valor": value, "sugerencia": suggestion}
}

func TestCalibrateCleanReviewKeepsBase(t *testing.T) {
	c := NewCalibrator()
	analysis := map[string]any{
		"claridad":    attr("claro", ""),
		"atomicidad":  attr("atómico", ""),
		"completitud": attr("completo", ""),
	}
	assert.Equal(t, 90.0, c.Calibrate(analysis, 90))
}

func TestCalibrateZeroAttributesYieldsZero(t *testing.T) {
	c := NewCalibrator()

	// No trustworthy signal regardless of the self-reported number.
	assert.Equal(t, 0.0, c.Calibrate(map[string]any{}, 100))
	assert.Equal(t, 0.0, c.Calibrate(map[string]any{
		"porcentaje": 100.0,
		"error":      "timeout",
	}, 100))
}

func TestCalibrateSkipsNonMappingAttributes(t *testing.T) {
	c := NewCalibrator()
	analysis := map[string]any{
		"claridad":     attr("ambiguo", ""), // +20
		"casos_prueba": []any{"caso 1"},     // skipped, not in divisor
		"porcentaje":   90.0,                // skipped
	}
	// One counted attribute, penalty 20.
	assert.Equal(t, 70.0, c.Calibrate(analysis, 90))
}

func TestCalibratePenaltiesAreCumulativePerAttribute(t *testing.T) {
	c := NewCalibrator()
	analysis := map[string]any{
		// value flag (20) + suggestion flag (15) + vague term (20) = 55
		"claridad": attr("ambiguo", "reemplazar el término rápido"),
	}
	assert.Equal(t, 35.0, c.Calibrate(analysis, 90))
}

func TestCalibrateAveragesPenaltyAcrossAttributes(t *testing.T) {
	c := NewCalibrator()
	analysis := map[string]any{
		"claridad":    attr("ambiguo", ""), // +20
		"completitud": attr("completo", ""),
		"atomicidad":  attr("atómico", ""),
		"viabilidad":  attr("viable", ""),
	}
	// total 20 over 4 attributes -> 90 - 5
	assert.Equal(t, 85.0, c.Calibrate(analysis, 90))
}

func TestCalibrateFloorsAtZero(t *testing.T) {
	c := NewCalibrator()
	analysis := map[string]any{
		"claridad": attr("ambiguo e incompleto", "reemplazar por algo adecuado"),
	}
	assert.Equal(t, 0.0, c.Calibrate(analysis, 10))
}

func TestCalibrateRoundsToTwoDecimals(t *testing.T) {
	c := NewCalibrator()
	analysis := map[string]any{
		"a": attr("ambiguo", ""), // +20
		"b": attr("claro", ""),
		"c": attr("claro", ""),
	}
	// 90 - 20/3 = 83.3333... -> 83.33
	assert.Equal(t, 83.33, c.Calibrate(analysis, 90))
}

func TestCalibrateMonotonicInRedFlags(t *testing.T) {
	c := NewCalibrator()
	base := 80.0

	clean := map[string]any{
		"claridad":    attr("claro", ""),
		"completitud": attr("completo", ""),
	}
	oneFlag := map[string]any{
		"claridad":    attr("ambiguo", ""),
		"completitud": attr("completo", ""),
	}
	twoFlags := map[string]any{
		"claridad":    attr("ambiguo", ""),
		"completitud": attr("incompleto", ""),
	}
	threeFlags := map[string]any{
		"claridad":    attr("ambiguo", "reformule la oración"),
		"completitud": attr("incompleto", ""),
	}

	s0 := c.Calibrate(clean, base)
	s1 := c.Calibrate(oneFlag, base)
	s2 := c.Calibrate(twoFlags, base)
	s3 := c.Calibrate(threeFlags, base)

	assert.GreaterOrEqual(t, s0, s1)
	assert.GreaterOrEqual(t, s1, s2)
	assert.GreaterOrEqual(t, s2, s3)
}

func TestCalibrateHandlesNonStringValues(t *testing.T) {
	c := NewCalibrator()
	analysis := map[string]any{
		// false stringifies without tripping any keyword; true likewise.
		"validez":   attr(true, ""),
		"necesidad": attr(false, ""),
	}
	assert.Equal(t, 75.0, c.Calibrate(analysis, 75))
}
