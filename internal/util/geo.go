package util

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const earthRadiusMeters = 6371000.0

// MoveToward advances from the start coordinate toward the end coordinate
// by distanceMeters along the great-circle path, clamping at the end.
func MoveToward(startLat, startLng, endLat, endLng, distanceMeters float64) [2]float64 {
	startPoint := s2.PointFromLatLng(s2.LatLngFromDegrees(startLat, startLng))
	endPoint := s2.PointFromLatLng(s2.LatLngFromDegrees(endLat, endLng))

	totalDistanceAngle := s1.Angle(s2.ChordAngleBetweenPoints(startPoint, endPoint).Angle())
	totalDistanceMeters := totalDistanceAngle.Radians() * earthRadiusMeters

	if totalDistanceMeters == 0 || distanceMeters >= totalDistanceMeters {
		return [2]float64{endLat, endLng}
	}

	fraction := distanceMeters / totalDistanceMeters
	newPoint := s2.Interpolate(fraction, startPoint, endPoint)
	newLatLng := s2.LatLngFromPoint(newPoint)

	return [2]float64{newLatLng.Lat.Degrees(), newLatLng.Lng.Degrees()}
}

// HaversineDistance returns the surface distance in meters between two
// coordinates.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	point1 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat1, lng1))
	point2 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat2, lng2))

	angle := s1.Angle(s2.ChordAngleBetweenPoints(point1, point2).Angle())
	return angle.Radians() * earthRadiusMeters
}
