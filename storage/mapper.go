package storage

import (
	"time"

	"github.com/lib/pq"

	"tolet/models"
)

// Row types mirror the stored representation: flat snake_case fields with
// latitude/longitude split out of the coordinate pair. The same rows are
// scanned from Postgres (db tags) and serialized into the local JSON store
// (json tags). Mapping functions are pure and total: no validation happens
// here, and absent optional fields come out as the domain field's natural
// empty value.

type userRow struct {
	ID               string `db:"id" json:"id"`
	Email            string `db:"email" json:"email"`
	PasswordHash     string `db:"password_hash" json:"password_hash,omitempty"`
	FullName         string `db:"full_name" json:"full_name"`
	Phone            string `db:"phone" json:"phone"`
	Age              int    `db:"age" json:"age"`
	Gender           string `db:"gender" json:"gender"`
	Role             string `db:"role" json:"role"`
	PermanentAddress string `db:"permanent_address" json:"permanent_address"`
	CurrentAddress   string `db:"current_address" json:"current_address"`
	ProfileComplete  bool   `db:"profile_complete" json:"profile_complete"`
}

type propertyRow struct {
	ID           string         `db:"id" json:"id"`
	OwnerID      string         `db:"owner_id" json:"owner_id"`
	PropertyType string         `db:"property_type" json:"property_type"`
	RoomType     string         `db:"room_type" json:"room_type"`
	Rent         int            `db:"rent" json:"rent"`
	Address      string         `db:"address" json:"address"`
	Latitude     float64        `db:"latitude" json:"latitude"`
	Longitude    float64        `db:"longitude" json:"longitude"`
	Images       pq.StringArray `db:"images" json:"images"`
	Description  string         `db:"description" json:"description"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	Verified     bool           `db:"verified" json:"verified"`
}

type wishlistRow struct {
	UserID     string `db:"user_id" json:"user_id"`
	PropertyID string `db:"property_id" json:"property_id"`
}

type requestRow struct {
	ID         string    `db:"id" json:"id"`
	PropertyID string    `db:"property_id" json:"property_id"`
	OwnerID    string    `db:"owner_id" json:"owner_id"`
	SeekerID   string    `db:"seeker_id" json:"seeker_id"`
	Message    string    `db:"message" json:"message"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type messageRow struct {
	ID        string    `db:"id" json:"id"`
	RequestID string    `db:"request_id" json:"request_id"`
	SenderID  string    `db:"sender_id" json:"sender_id"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func toDomainUser(r userRow) models.User {
	return models.User{
		ID:               r.ID,
		Email:            r.Email,
		FullName:         r.FullName,
		Phone:            r.Phone,
		Age:              r.Age,
		Gender:           r.Gender,
		Role:             models.UserRole(r.Role),
		PermanentAddress: r.PermanentAddress,
		CurrentAddress:   r.CurrentAddress,
		ProfileComplete:  r.ProfileComplete,
	}
}

func fromDomainUser(u models.User, passwordHash string) userRow {
	return userRow{
		ID:               u.ID,
		Email:            u.Email,
		PasswordHash:     passwordHash,
		FullName:         u.FullName,
		Phone:            u.Phone,
		Age:              u.Age,
		Gender:           u.Gender,
		Role:             string(u.Role),
		PermanentAddress: u.PermanentAddress,
		CurrentAddress:   u.CurrentAddress,
		ProfileComplete:  u.ProfileComplete,
	}
}

func toDomainProperty(r propertyRow) models.Property {
	images := []string{}
	if r.Images != nil {
		images = append(images, r.Images...)
	}
	return models.Property{
		ID:           r.ID,
		OwnerID:      r.OwnerID,
		PropertyType: models.PropertyType(r.PropertyType),
		RoomType:     models.RoomType(r.RoomType),
		Rent:         r.Rent,
		Address:      r.Address,
		Coordinates:  models.Coordinates{Lat: r.Latitude, Lng: r.Longitude},
		Images:       images,
		Description:  r.Description,
		CreatedAt:    r.CreatedAt,
		Verified:     r.Verified,
	}
}

func fromDomainProperty(p models.Property) propertyRow {
	return propertyRow{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		PropertyType: string(p.PropertyType),
		RoomType:     string(p.RoomType),
		Rent:         p.Rent,
		Address:      p.Address,
		Latitude:     p.Coordinates.Lat,
		Longitude:    p.Coordinates.Lng,
		Images:       pq.StringArray(p.Images),
		Description:  p.Description,
		CreatedAt:    p.CreatedAt,
		Verified:     p.Verified,
	}
}

func toDomainRequest(r requestRow) models.AccommodationRequest {
	return models.AccommodationRequest{
		ID:         r.ID,
		PropertyID: r.PropertyID,
		OwnerID:    r.OwnerID,
		SeekerID:   r.SeekerID,
		Message:    r.Message,
		Status:     models.RequestStatus(r.Status),
		CreatedAt:  r.CreatedAt,
	}
}

func fromDomainRequest(r models.AccommodationRequest) requestRow {
	return requestRow{
		ID:         r.ID,
		PropertyID: r.PropertyID,
		OwnerID:    r.OwnerID,
		SeekerID:   r.SeekerID,
		Message:    r.Message,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
	}
}

func toDomainMessage(r messageRow) models.Message {
	return models.Message{
		ID:        r.ID,
		RequestID: r.RequestID,
		SenderID:  r.SenderID,
		Text:      r.Text,
		Timestamp: r.CreatedAt,
	}
}

func fromDomainMessage(m models.Message) messageRow {
	return messageRow{
		ID:        m.ID,
		RequestID: m.RequestID,
		SenderID:  m.SenderID,
		Text:      m.Text,
		CreatedAt: m.Timestamp,
	}
}
