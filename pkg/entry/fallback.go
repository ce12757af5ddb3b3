package entry

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Fallback values substituted when a single field cannot be read.
const (
	// UnknownName replaces names that are not valid UTF-8
	UnknownName = "unknown name"

	// NoModified is shown when the filesystem reports no modification time
	NoModified = ""
)

// TimeLayout formats modification times, e.g. "Mar  7 2024 09:41".
const TimeLayout = "Jan _2 2006 15:04"

// ErrNotFound is returned when a single path cannot be described.
var ErrNotFound = errors.New("no such file found")

// SpecialNames start with a dot but are always treated as visible.
var SpecialNames = []string{".gitignore"}

// IsSpecial reports whether name is on the always-visible allow-list.
func IsSpecial(name string) bool {
	for _, s := range SpecialNames {
		if s == name {
			return true
		}
	}
	return false
}

// IsHidden reports whether name follows the dot-file convention and is not
// allow-listed.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && !IsSpecial(name)
}

// DisplayName returns name, or UnknownName when it is not valid UTF-8.
func DisplayName(name string) string {
	if !utf8.ValidString(name) {
		return UnknownName
	}
	return name
}
