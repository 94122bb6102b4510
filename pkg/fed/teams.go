package fed

// The description grammar cannot tell where a team name ends, so names are
// checked against the teams that actually appear in the feed. A team like
// "Millennials, wielding An Actual Airplane" slipping through as a name is
// the failure mode this guards against.

var knownTeamNicknames = map[string]struct{}{
	"Fridays": {}, "Moist Talkers": {}, "Lovers": {}, "Jazz Hands": {},
	"Sunbeams": {}, "Tigers": {}, "Wild Wings": {}, "Flowers": {},
	"Millennials": {}, "Pies": {}, "Garages": {}, "Dale": {}, "Lift": {},
	"Firefighters": {}, "Steaks": {}, "Magic": {}, "Breath Mints": {},
	"Spies": {}, "Shoe Thieves": {}, "Tacos": {}, "Georgias": {},
	"Worms": {}, "Crabs": {}, "Mechanics": {},
}

var knownTeamNames = map[string]struct{}{
	"Hawai'i Fridays": {}, "Canada Moist Talkers": {}, "San Francisco Lovers": {},
	"Breckenridge Jazz Hands": {}, "Hellmouth Sunbeams": {}, "Hades Tigers": {},
	"Mexico City Wild Wings": {}, "Boston Flowers": {}, "New York Millennials": {},
	"Philly Pies": {}, "Seattle Garages": {}, "Miami Dale": {}, "Tokyo Lift": {},
	"Chicago Firefighters": {}, "Dallas Steaks": {}, "Yellowstone Magic": {},
	"Kansas City Breath Mints": {}, "Houston Spies": {}, "Charleston Shoe Thieves": {},
	"LA Unlimited Tacos": {}, "Atlantis Georgias": {}, "Ohio Worms": {},
	"Baltimore Crabs": {}, "Core Mechanics": {},
}

// IsKnownTeamName reports whether name is a full team name seen in the feed.
func IsKnownTeamName(name string) bool {
	_, ok := knownTeamNames[name]
	return ok
}

// IsKnownTeamNickname reports whether name is a team nickname seen in the feed.
func IsKnownTeamNickname(name string) bool {
	_, ok := knownTeamNicknames[name]
	return ok
}
