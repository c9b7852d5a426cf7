// Package geo holds the pure distance and radius-filter logic used by
// property search.
package geo

import (
	"math"

	"tolet/models"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// DistanceKm returns the great-circle distance between two coordinates.
func DistanceKm(a, b models.Coordinates) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// Filter is the search criteria applied client-side over a property set.
// A zero Type means no category restriction; a nil Center disables the
// radius check.
type Filter struct {
	Type     models.PropertyType
	MinPrice int
	MaxPrice int
	Center   *models.Coordinates
	RadiusKm float64
}

// FilterProperties keeps a property iff the type matches (or no type is
// set), MinPrice <= rent <= MaxPrice, and the property lies within RadiusKm
// of Center when one is given. The pass is order-preserving, non-mutating
// and idempotent; no distance sort is applied.
func FilterProperties(props []models.Property, f Filter) []models.Property {
	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		if f.Type != "" && p.PropertyType != f.Type {
			continue
		}
		if p.Rent < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && p.Rent > f.MaxPrice {
			continue
		}
		if f.Center != nil && DistanceKm(p.Coordinates, *f.Center) > f.RadiusKm {
			continue
		}
		out = append(out, p)
	}
	return out
}
