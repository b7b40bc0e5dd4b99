package domain

import (
	"errors"
	"math"
)

// earthRadiusKm is the mean Earth radius used by the spherical model.
const earthRadiusKm = 6371.0

// ErrNotDescending is returned when the sonde reports a zero climb rate, so
// no time-to-ground exists and nothing can be projected.
var ErrNotDescending = errors.New("sonde is not descending")

// Predict projects the ground-impact point from the last-seen state, assuming
// the sonde holds its course, horizontal speed, and descent rate for the whole
// remaining descent. The horizontal travel is a direct spherical geodesic:
// start point, bearing, and distance on an Earth of radius 6371.0 km.
//
// A sonde already at or below ground height lands where it was last seen, with
// zero time to ground. For a nonzero descent rate the function is total.
func Predict(t Telemetry, groundHeight float64) (PredictedPoint, error) {
	descentRate := t.DescentRate()
	if descentRate == 0 {
		return PredictedPoint{}, ErrNotDescending
	}

	heightToDescend := t.Altitude - groundHeight
	if heightToDescend <= 0 {
		return PredictedPoint{Coordinates: t.LastSeen}, nil
	}

	timeToGround := heightToDescend / descentRate
	distanceKm := t.SpeedMPS * timeToGround / 1000.0

	lat := radians(t.LastSeen.Lat)
	lon := radians(t.LastSeen.Lon)
	bearing := radians(t.Course)
	angular := distanceKm / earthRadiusKm

	newLat := math.Asin(
		math.Sin(lat)*math.Cos(angular) +
			math.Cos(lat)*math.Sin(angular)*math.Cos(bearing),
	)
	newLon := lon + math.Atan2(
		math.Sin(bearing)*math.Sin(angular)*math.Cos(lat),
		math.Cos(angular)-math.Sin(lat)*math.Sin(newLat),
	)

	return PredictedPoint{
		Coordinates:  Coordinates{Lat: degrees(newLat), Lon: degrees(newLon)},
		TimeToGround: timeToGround,
	}, nil
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
