package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"whiteboard/internal/models"
)

var roomKeyRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var v = validator.New()

// RoomKey reports whether key names a syntactically valid room: 1-50
// characters, alphanumerics, underscore and hyphen only.
func RoomKey(key string) bool {
	return len(key) >= 1 && len(key) <= 50 && roomKeyRe.MatchString(key)
}

// Stroke reports whether every stroke coordinate lies within canvas bounds.
// NaN fails every range comparison, so non-finite coordinates are rejected.
func Stroke(s models.Stroke) bool {
	return v.Struct(s) == nil
}

// Cursor reports whether a cursor position lies within canvas bounds.
func Cursor(c models.Cursor) bool {
	return v.Struct(c) == nil
}
