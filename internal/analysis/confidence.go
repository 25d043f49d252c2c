package analysis

import (
	"strconv"
	"strings"
)

// Fixed numeric anchors for enumerated confidence labels. Downstream
// consumers always see a number.
const (
	ConfidenceHigh   = 0.85
	ConfidenceMedium = 0.65
	ConfidenceLow    = 0.45
)

// NormalizeConfidence maps a model-reported confidence, which may arrive
// as an enumerated label or a numeric value, onto [0,1]. Labels map to
// fixed anchors; numbers are clamped. Anything unrecognizable gets the
// neutral 0.5.
func NormalizeConfidence(v any) float64 {
	switch value := v.(type) {
	case float64:
		return clampUnit(value)
	case float32:
		return clampUnit(float64(value))
	case int:
		return clampUnit(float64(value))
	case string:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "high":
			return ConfidenceHigh
		case "medium":
			return ConfidenceMedium
		case "low":
			return ConfidenceLow
		}
		if n, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return clampUnit(n)
		}
		return 0.5
	default:
		return 0.5
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
