package models

import "time"

// UserRole distinguishes property owners from accommodation seekers.
// TENANT is the historical name for the owner role and is kept for
// compatibility with stored data.
type UserRole string

const (
	RoleTenant UserRole = "TENANT"
	RoleSeeker UserRole = "SEEKER"
	RoleNone   UserRole = "NONE"
)

// PropertyType is the coarse listing category.
type PropertyType string

const (
	TypeRoom      PropertyType = "ROOM"
	TypeHostelPG  PropertyType = "HOSTEL_PG"
	TypeApartment PropertyType = "APARTMENT"
)

// RoomType is the sharing / flat arrangement of a listing.
type RoomType string

const (
	RoomSingle    RoomType = "Single Sharing"
	RoomDouble    RoomType = "Double Sharing"
	RoomTriple    RoomType = "Triple Sharing"
	Room1BHK      RoomType = "1 BHK"
	Room2BHK      RoomType = "2 BHK"
	RoomFlatShare RoomType = "Flat Share"
)

// RequestStatus tracks the lifecycle of an accommodation request.
// Only StatusNew is ever written by the current flow; the other values
// exist so data from future versions still parses.
type RequestStatus string

const (
	StatusNew       RequestStatus = "new"
	StatusResponded RequestStatus = "responded"
	StatusClosed    RequestStatus = "closed"
)

// Coordinates is a lat/lng pair. It doubles as a property's fixed location
// and as a transient search center.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// User is an account with its onboarding state. Role stays RoleNone and
// ProfileComplete stays false until the user finishes onboarding.
type User struct {
	ID               string   `json:"id"`
	Email            string   `json:"email"`
	FullName         string   `json:"fullName"`
	Phone            string   `json:"phone"`
	Age              int      `json:"age"`
	Gender           string   `json:"gender"`
	Role             UserRole `json:"role"`
	PermanentAddress string   `json:"permanentAddress"`
	CurrentAddress   string   `json:"currentAddress"`
	ProfileComplete  bool     `json:"profileComplete"`
}

// ProfileUpdate carries a partial profile change. Nil fields are left
// untouched.
type ProfileUpdate struct {
	FullName         *string   `json:"fullName,omitempty"`
	Phone            *string   `json:"phone,omitempty"`
	Age              *int      `json:"age,omitempty"`
	Gender           *string   `json:"gender,omitempty"`
	Role             *UserRole `json:"role,omitempty"`
	PermanentAddress *string   `json:"permanentAddress,omitempty"`
	CurrentAddress   *string   `json:"currentAddress,omitempty"`
}

// Property is a published listing.
type Property struct {
	ID           string       `json:"id"`
	OwnerID      string       `json:"ownerId"`
	PropertyType PropertyType `json:"propertyType"`
	RoomType     RoomType     `json:"roomType"`
	Rent         int          `json:"rent"`
	Address      string       `json:"address"`
	Coordinates  Coordinates  `json:"coordinates"`
	Images       []string     `json:"images"`
	Description  string       `json:"description"`
	CreatedAt    time.Time    `json:"createdAt"`
	Verified     bool         `json:"verified"`
}

// NewProperty is the owner-supplied part of a listing. ID, CreatedAt and
// Verified are always assigned server-side.
type NewProperty struct {
	OwnerID      string       `json:"ownerId"`
	PropertyType PropertyType `json:"propertyType"`
	RoomType     RoomType     `json:"roomType"`
	Rent         int          `json:"rent"`
	Address      string       `json:"address"`
	Coordinates  Coordinates  `json:"coordinates"`
	Images       []string     `json:"images"`
	Description  string       `json:"description"`
}

// WishlistItem pairs a user with a saved property. At most one row exists
// per pair.
type WishlistItem struct {
	UserID     string `json:"userId"`
	PropertyID string `json:"propertyId"`
}

// AccommodationRequest is a seeker's enquiry about a property.
type AccommodationRequest struct {
	ID         string        `json:"id"`
	PropertyID string        `json:"propertyId"`
	OwnerID    string        `json:"ownerId"`
	SeekerID   string        `json:"seekerId"`
	Message    string        `json:"message"`
	Status     RequestStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Message is a follow-up message under an accommodation request thread.
type Message struct {
	ID        string    `json:"id"`
	RequestID string    `json:"requestId"`
	SenderID  string    `json:"senderId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// RentReport holds aggregate statistics over the current listing set.
type RentReport struct {
	TotalListings int                  `json:"totalListings"`
	Verified      int                  `json:"verified"`
	AverageRent   float64              `json:"averageRent"`
	MinRent       int                  `json:"minRent"`
	MaxRent       int                  `json:"maxRent"`
	ByType        map[PropertyType]int `json:"byType"`
}
