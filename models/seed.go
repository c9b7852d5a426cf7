package models

import "time"

// DefaultPropertyImage is stored when an owner publishes a listing with no
// photos, so every listing renders with at least one image.
const DefaultPropertyImage = "https://picsum.photos/seed/default/600/400"

// SeedProperties returns the fixed fallback dataset served when no backing
// store is configured or the remote one is unreachable. Fresh slices every
// call so callers can filter freely.
func SeedProperties() []Property {
	now := time.Now().UTC()
	return []Property{
		{
			ID:           "p1",
			OwnerID:      "u2",
			PropertyType: TypeRoom,
			RoomType:     RoomSingle,
			Rent:         8500,
			Address:      "Viman Nagar, Pune, Maharashtra 411014",
			Coordinates:  Coordinates{Lat: 18.5679, Lng: 73.9143},
			Images: []string{
				"https://picsum.photos/seed/p1/600/400",
				"https://picsum.photos/seed/p1b/600/400",
			},
			Description: "Cozy single room for students near Symbiosis.",
			CreatedAt:   now,
			Verified:    true,
		},
		{
			ID:           "p2",
			OwnerID:      "u2",
			PropertyType: TypeHostelPG,
			RoomType:     RoomDouble,
			Rent:         6500,
			Address:      "Koramangala 4th Block, Bengaluru, Karnataka 560034",
			Coordinates:  Coordinates{Lat: 12.9339, Lng: 77.6231},
			Images:       []string{"https://picsum.photos/seed/p2/600/400"},
			Description:  "Affordable double sharing PG for boys.",
			CreatedAt:    now.Add(-time.Minute),
			Verified:     false,
		},
	}
}
