package entry

import "fmt"

// Kind is the type of a listed filesystem object.
type Kind int

const (
	// File is anything that is not a directory
	File Kind = iota
	// Dir is a directory
	Dir
)

func (k Kind) String() string {
	switch k {
	case File:
		return "File"
	case Dir:
		return "Dir"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name for JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "File":
		*k = File
	case "Dir":
		*k = Dir
	default:
		return fmt.Errorf("unknown entry kind %q", string(text))
	}
	return nil
}

// Entry is one row of a listing. Size and Modified are already formatted
// for display.
type Entry struct {
	Kind       Kind   `json:"e_type" yaml:"e_type"`
	Name       string `json:"name" yaml:"name"`
	Size       string `json:"len_bytes" yaml:"len_bytes"`
	Modified   string `json:"modified" yaml:"modified"`
	ReadOnly   bool   `json:"read_only" yaml:"read_only"`
	Hidden     bool   `json:"hidden" yaml:"hidden"`
	Executable bool   `json:"is_exec" yaml:"is_exec"`
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == Dir
}

// SizeMode selects how sizes are computed and shown.
type SizeMode struct {
	// DirectorySize sums directory contents recursively instead of
	// reporting the directory inode size
	DirectorySize bool

	// ByteSize shows raw byte counts instead of KB/MB/... units
	ByteSize bool
}
