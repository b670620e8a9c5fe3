package nav

import "strings"

// Location identifies which surface of the UI shell is currently presented.
// The shell reports its location to the companion; the guard only needs the
// coarse grouping below, not individual screen names.
type Location string

// Known locations.
const (
	// LocationIndex is the boot/splash surface shown before anything else.
	LocationIndex Location = "index"

	// LocationAuth groups the login, registration, and password-reset
	// surfaces.
	LocationAuth Location = "auth"

	// LocationMain groups the authenticated tab surfaces (dashboard,
	// vitals, alert log).
	LocationMain Location = "main"

	// LocationProfile is the authenticated profile surface.
	LocationProfile Location = "profile"

	// LocationOther covers surfaces the guard has no opinion about.
	LocationOther Location = "other"
)

// ParseLocation normalizes a shell-reported location string. Unknown values
// map to LocationOther so new surfaces never trip the guard.
func ParseLocation(raw string) Location {
	switch Location(strings.ToLower(strings.TrimSpace(raw))) {
	case LocationIndex:
		return LocationIndex
	case LocationAuth:
		return LocationAuth
	case LocationMain:
		return LocationMain
	case LocationProfile:
		return LocationProfile
	default:
		return LocationOther
	}
}

// Protected reports whether the location requires an authenticated session.
func (l Location) Protected() bool {
	return l == LocationMain || l == LocationProfile
}

// AuthOnly reports whether the location should only be shown to a logged-out
// user.
func (l Location) AuthOnly() bool {
	return l == LocationAuth || l == LocationIndex
}
