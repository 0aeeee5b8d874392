package mixer

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
)

// CircadianTemperature picks a default color temperature from the sun's
// position: the warm reference when the sun is below the horizon, scaling
// toward the cold reference as the sun climbs. Used when a turn-on command
// carries no explicit color temperature and none is cached.
func CircadianTemperature(t time.Time, lat, lon float64, warmKelvin, coldKelvin int) int {
	position := suncalc.GetPosition(t, lat, lon)

	// Altitude is in radians; sin(altitude) gives the vertical fraction of
	// full daylight, 0 at the horizon and 1 at zenith.
	fraction := math.Sin(position.Altitude)
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	return warmKelvin + int(math.Round(fraction*float64(coldKelvin-warmKelvin)))
}
