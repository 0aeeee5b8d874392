package mixer

import (
	"log/slog"

	"github.com/saaga0h/tandem/pkg/color"
)

// BrightnessCalculator computes the warm and cold emitter brightness required
// to reproduce a target color temperature at a target brightness.
type BrightnessCalculator struct {
	// WarmKelvin is the fixed temperature of the warm emitter
	WarmKelvin int
	// ColdKelvin is the fixed temperature of the cold emitter
	ColdKelvin int

	// TargetKelvin is the color temperature to reach
	TargetKelvin int
	// TargetBrightness is the brightness to reach in the range 1...255
	TargetBrightness int

	// Priority governs the behavior when the target pair is outside the
	// admissible range. Logged but not yet differentiating.
	Priority Priority
}

// ComputeBrightnesses returns the (warm, cold) brightness pair, each in the
// range 1-255, that best reproduces the target.
//
// The split keeps a constant perceived brightness throughout the temperature
// range, attenuating the mid-ranges down to match what the extremes can
// deliver. The alternative of using the maximum available output at each
// temperature as the 100% baseline is not implemented.
func (c BrightnessCalculator) ComputeBrightnesses(logger *slog.Logger) (warm, cold int) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Debug("Computing emitter brightness",
		"target_kelvin", c.TargetKelvin,
		"target_brightness", c.TargetBrightness,
		"priority", string(c.Priority))

	channels := color.ColorTemperatureToRGBWW(
		c.TargetKelvin,
		c.TargetBrightness,
		c.WarmKelvin,
		c.ColdKelvin,
	)

	warm = channels.Warm
	cold = channels.Cold

	// Clamp to the brightness ceiling. The forward mapping never produces
	// values below the range for in-range targets, so no floor is applied.
	if warm > BrightnessMax {
		warm = BrightnessMax
	}
	if cold > BrightnessMax {
		cold = BrightnessMax
	}

	return warm, cold
}
