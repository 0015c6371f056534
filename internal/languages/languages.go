package languages

import (
	"fmt"
	"strings"
)

// Language is a supported translation target
type Language struct {
	id   string
	name string
	code string
}

// ID returns the identifier used on the wire (e.g. "tamil")
func (l Language) ID() string { return l.id }

// DisplayName returns the human readable name (e.g. "Tamil")
func (l Language) DisplayName() string { return l.name }

// Code returns the ISO-639-1 code (e.g. "ta")
func (l Language) Code() string { return l.code }

// String implements fmt.Stringer
func (l Language) String() string { return l.id }

// IsZero reports whether l is the zero Language
func (l Language) IsZero() bool { return l.id == "" }

var (
	Tamil  = Language{id: "tamil", name: "Tamil", code: "ta"}
	Telugu = Language{id: "telugu", name: "Telugu", code: "te"}
	Hindi  = Language{id: "hindi", name: "Hindi", code: "hi"}
)

var all = []Language{Tamil, Telugu, Hindi}

// All returns the supported languages in display order
func All() []Language {
	result := make([]Language, len(all))
	copy(result, all)
	return result
}

// Default returns the language selected when a session starts
func Default() Language {
	return all[0]
}

// IDs returns the identifiers of all supported languages
func IDs() []string {
	ids := make([]string, 0, len(all))
	for _, l := range all {
		ids = append(ids, l.id)
	}
	return ids
}

// DisplayNames returns the display names of all supported languages
func DisplayNames() []string {
	names := make([]string, 0, len(all))
	for _, l := range all {
		names = append(names, l.name)
	}
	return names
}

// Parse looks up a language by identifier. Matching ignores case and
// surrounding whitespace.
func Parse(id string) (Language, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, l := range all {
		if l.id == id {
			return l, nil
		}
	}
	return Language{}, fmt.Errorf("unsupported language: %s", id)
}

// ByDisplayName looks up a language by its display name
func ByDisplayName(name string) (Language, bool) {
	for _, l := range all {
		if l.name == name {
			return l, true
		}
	}
	return Language{}, false
}
