package game

import "regexp"

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidId reports whether id is usable as a story, location, user, item or
// challenge id. Dots are reserved for composite record keys.
func ValidId(id string) bool {
	return idPattern.MatchString(id)
}

// LocationKey is the record key of a location within a story.
func LocationKey(storyId, locationId string) string {
	return storyId + "." + locationId
}

// PlayerKey is the record key of a player's state within a story.
func PlayerKey(storyId, userId string) string {
	return storyId + "." + userId
}
