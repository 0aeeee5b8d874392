package mixer

import (
	"github.com/saaga0h/tandem/pkg/color"
)

// TemperatureCalculator derives the perceived combined color temperature of a
// warm and a cold emitter from their current brightness levels.
type TemperatureCalculator struct {
	// WarmBrightness is the brightness of the warm emitter in the range 1...255
	WarmBrightness int
	// WarmKelvin is the fixed temperature of the warm emitter
	WarmKelvin int
	// ColdBrightness is the brightness of the cold emitter in the range 1...255
	ColdBrightness int
	// ColdKelvin is the fixed temperature of the cold emitter
	ColdKelvin int
}

// CurrentTemperature computes the combined color temperature in Kelvin.
// The result is clamped to [WarmKelvin, ColdKelvin] so rounding noise in the
// underlying mapping can never report a physically unreachable temperature.
func (c TemperatureCalculator) CurrentTemperature() int {
	combined, _ := color.RGBWWToColorTemperature(
		color.RGBWW{Cold: c.ColdBrightness, Warm: c.WarmBrightness},
		c.WarmKelvin,
		c.ColdKelvin,
	)

	if combined < c.WarmKelvin {
		return c.WarmKelvin
	}
	if combined > c.ColdKelvin {
		return c.ColdKelvin
	}
	return combined
}
