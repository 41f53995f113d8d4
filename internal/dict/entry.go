package dict

import "fmt"

// Entry is a single dictionary record: a case/accent-insensitively
// ordered name, a free-text definition, and the author who contributed it.
//
// Names are unique under the store's Comparator equivalence, not under
// byte-exact comparison: "Café" and "cafe" are the same entry.
type Entry struct {
	Name       string `json:"entry"`
	Definition string `json:"definition"`
	Author     string `json:"author"`
}

// ValidationError reports a malformed entry encountered at load time.
// Malformed entries are quarantined before sorting so that comparison
// never runs against a record with no name.
type ValidationError struct {
	Index int    // position in the loaded sequence
	Field string // offending field
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entry[%d]: %s: %s", e.Index, e.Field, e.Msg)
}

// Validate checks that the entry has the fields the store requires.
// The definition may be empty; the name and author may not.
func (e Entry) Validate(index int) error {
	if e.Name == "" {
		return &ValidationError{Index: index, Field: "entry", Msg: "name is required"}
	}
	if e.Author == "" {
		return &ValidationError{Index: index, Field: "author", Msg: "author is required"}
	}
	return nil
}
