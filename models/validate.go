package models

import (
	"regexp"
	"strings"
	"unicode"
)

// indianPhoneRegexp matches a 10-digit Indian mobile number.
var indianPhoneRegexp = regexp.MustCompile(`^[6-9]\d{9}$`)

// ValidPhone reports whether s is an acceptable contact number.
func ValidPhone(s string) bool {
	return indianPhoneRegexp.MatchString(s)
}

// ValidPropertyType reports whether t is one of the known categories.
func ValidPropertyType(t PropertyType) bool {
	switch t {
	case TypeRoom, TypeHostelPG, TypeApartment:
		return true
	}
	return false
}

// ValidRoomType reports whether r is one of the known arrangements.
func ValidRoomType(r RoomType) bool {
	switch r {
	case RoomSingle, RoomDouble, RoomTriple, Room1BHK, Room2BHK, RoomFlatShare:
		return true
	}
	return false
}

// ValidRole reports whether r is a choosable role. RoleNone is the unset
// state, not a choice.
func ValidRole(r UserRole) bool {
	return r == RoleTenant || r == RoleSeeker
}

// IsProfileComplete reports whether every required onboarding field is
// populated. The profile_complete flag is always recomputed from this,
// never taken from client input.
func (u *User) IsProfileComplete() bool {
	return u.FullName != "" &&
		ValidPhone(u.Phone) &&
		u.Age >= 18 &&
		u.PermanentAddress != ""
}

// IsValid reports whether an owner-submitted listing can be published.
func (p *NewProperty) IsValid() bool {
	return p.OwnerID != "" &&
		ValidPropertyType(p.PropertyType) &&
		ValidRoomType(p.RoomType) &&
		p.Rent > 0 &&
		p.Address != "" &&
		p.Description != ""
}

// Normalize trims and collapses whitespace in the free-text fields.
func (p *NewProperty) Normalize() {
	p.Address = NormalizeText(p.Address)
	p.Description = NormalizeText(p.Description)
}

// NormalizeText strips leading/trailing whitespace and collapses internal
// runs of whitespace to a single space.
func NormalizeText(s string) string {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
