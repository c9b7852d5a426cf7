// Package navigation implements the client view-state machine: a closed
// set of pages, a back-stack, and the onboarding gating rules applied after
// every auth resolution.
package navigation

import "fmt"

// Page is one of the application's views. Using a closed enum makes an
// invalid page name a parse error instead of a silently-ignored string.
type Page int

const (
	Landing Page = iota
	Auth
	RoleSelection
	Profile
	Search
	Dashboard
	AddProperty
	PropertyDetails
	Wishlist
)

var pageNames = map[Page]string{
	Landing:         "landing",
	Auth:            "auth",
	RoleSelection:   "role-selection",
	Profile:         "profile",
	Search:          "search",
	Dashboard:       "dashboard",
	AddProperty:     "add-property",
	PropertyDetails: "property-details",
	Wishlist:        "wishlist",
}

func (p Page) String() string {
	if name, ok := pageNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Page(%d)", int(p))
}

// ParsePage resolves a page identifier from the wire.
func ParsePage(s string) (Page, error) {
	for p, name := range pageNames {
		if name == s {
			return p, nil
		}
	}
	return Landing, fmt.Errorf("navigation: unknown page %q", s)
}
