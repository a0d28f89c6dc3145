package wildfire

import (
	"math"

	"github.com/AmmaarShareef/phoenix-aid-backend/internal/types"
)

// kmPerDegreeLat: one degree of latitude is close to 111 km everywhere.
const kmPerDegreeLat = 111.0

const earthRadiusKm = 6371.0

// BoundingBoxAround returns the rectangular prefilter for a radius query.
// Longitude degrees shrink with latitude, so the lng delta is scaled by
// cos(lat); near the poles the box widens to the full longitude range.
func BoundingBoxAround(lat, lng, radiusKm float64) types.BoundingBox {
	latDelta := radiusKm / kmPerDegreeLat

	cosLat := math.Abs(math.Cos(lat * math.Pi / 180))
	lngDelta := 180.0
	if cosLat > 1e-6 {
		lngDelta = radiusKm / (kmPerDegreeLat * cosLat)
	}

	return types.BoundingBox{
		MinLat: lat - latDelta,
		MaxLat: lat + latDelta,
		MinLng: lng - lngDelta,
		MaxLng: lng + lngDelta,
	}
}

// HaversineKm returns the great-circle distance between two points.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
