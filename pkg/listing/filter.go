package listing

import (
	"errors"
	"fmt"

	"github.com/sonemaro/btrls/pkg/entry"
)

// ErrNoEntries is returned when a filtered listing is empty.
var ErrNoEntries = errors.New("no files or directories found")

// Visibility selects which entries survive filtering.
type Visibility int

const (
	// Default hides dot entries except the allow-listed ones
	Default Visibility = iota
	// ShowAll keeps every entry
	ShowAll
	// HiddenOnly keeps only hidden entries
	HiddenOnly
)

func (v Visibility) String() string {
	switch v {
	case Default:
		return "default"
	case ShowAll:
		return "all"
	case HiddenOnly:
		return "hidden-only"
	default:
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
}

// VisibilityFromFlags maps the --all and --only-hidden flags to a mode.
// --only-hidden takes precedence.
func VisibilityFromFlags(all, onlyHidden bool) Visibility {
	switch {
	case onlyHidden:
		return HiddenOnly
	case all:
		return ShowAll
	default:
		return Default
	}
}

// Filter returns the entries visible under v, preserving order. The input
// slice is not modified.
func Filter(entries []entry.Entry, v Visibility) []entry.Entry {
	if v == ShowAll {
		out := make([]entry.Entry, len(entries))
		copy(out, entries)
		return out
	}

	out := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		switch v {
		case HiddenOnly:
			if e.Hidden {
				out = append(out, e)
			}
		default:
			if !e.Hidden || entry.IsSpecial(e.Name) {
				out = append(out, e)
			}
		}
	}
	return out
}
