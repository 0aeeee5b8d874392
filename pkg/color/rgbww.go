// Package color implements the dual-white color mixing primitives used by the
// mixer: conversions between a color temperature plus brightness and the
// cold/warm channel pair of an RGBWW fixture.
package color

import "math"

// RGBWW is a five channel color value as used by dual-white fixtures.
// Only the Cold and Warm channels carry information for temperature mixing;
// the RGB channels are kept for wire compatibility with RGBWW devices.
type RGBWW struct {
	R    int
	G    int
	B    int
	Cold int
	Warm int
}

// KelvinToMired converts a color temperature in Kelvin to mireds.
func KelvinToMired(kelvin int) int {
	return int(math.Floor(1000000 / float64(kelvin)))
}

// MiredToKelvin converts a color temperature in mireds to Kelvin.
func MiredToKelvin(mired float64) int {
	return int(math.Floor(1000000 / mired))
}

// ColorTemperatureToRGBWW converts a target color temperature and brightness
// into an RGBWW channel vector, given the fixture's warm and cold reference
// temperatures. The cold channel receives the share of brightness proportional
// to the target's position in mired space between the two references; the warm
// channel receives the remainder, so Cold+Warm always sums to brightness
// (up to rounding).
func ColorTemperatureToRGBWW(temperature, brightness, warmKelvin, coldKelvin int) RGBWW {
	maxMireds := float64(KelvinToMired(warmKelvin))
	minMireds := float64(KelvinToMired(coldKelvin))
	miredRange := maxMireds - minMireds
	mireds := float64(KelvinToMired(temperature))

	cold := ((maxMireds - mireds) / miredRange) * float64(brightness)
	warm := float64(brightness) - cold

	return RGBWW{
		Cold: int(math.Round(cold)),
		Warm: int(math.Round(warm)),
	}
}

// RGBWWToColorTemperature converts an RGBWW channel vector back to the
// equivalent color temperature and combined brightness. It is the inverse of
// ColorTemperatureToRGBWW. A vector with both white channels at zero reports
// the warm reference temperature at zero brightness. The combined brightness
// is capped at 255.
func RGBWWToColorTemperature(c RGBWW, warmKelvin, coldKelvin int) (kelvin, brightness int) {
	maxMireds := float64(KelvinToMired(warmKelvin))
	minMireds := float64(KelvinToMired(coldKelvin))

	level := float64(c.Warm)/255 + float64(c.Cold)/255
	if level == 0 {
		return warmKelvin, 0
	}

	mired := (float64(c.Cold)/255/level)*(minMireds-maxMireds) + maxMireds

	combined := int(math.Round(level * 255))
	if combined > 255 {
		combined = 255
	}

	return MiredToKelvin(mired), combined
}
