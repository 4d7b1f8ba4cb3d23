package models

import "unicode/utf8"

// Column widths of the bounded text fields, counted in characters.
const (
	MaxNameLength     = 255
	MaxEmailLength    = 255
	MaxMoodLength     = 50
	MaxEmojiLength    = 16
	MaxTitleLength    = 255
	MaxCategoryLength = 50
)

// TooLong reports whether s exceeds max characters.
func TooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}
