package dict

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Comparator defines the total order over entry names: locale-sensitive
// collation with case and diacritics folded. "café", "CAFE", and "Café"
// all compare equal; "café" and "cafa" do not.
//
// The comparator must be referentially stable for the process lifetime:
// the store's binary search depends on the order used for sorting being
// the same order used for searching. The collator is therefore built once
// at construction and never reconfigured.
//
// Thread-safety: collate.Collator is not safe for concurrent use. The
// Comparator is only invoked under the owning Store's mutex.
type Comparator struct {
	col *collate.Collator
}

// NewComparator builds a comparator for the given BCP 47 locale tag.
// collate.Loose folds case, diacritics, and width, which matches the
// accent-level sensitivity the dictionary wants: base letters are
// distinguished, accented variants are not.
func NewComparator(tag language.Tag) *Comparator {
	return &Comparator{col: collate.New(tag, collate.Loose)}
}

// Compare returns a negative value if a sorts before b, zero if they are
// equivalent under the configured sensitivity, and a positive value if a
// sorts after b.
//
// Inputs are NFC-normalized before comparison so that precomposed and
// decomposed spellings of the same text collate identically.
func (c *Comparator) Compare(a, b string) int {
	return c.col.CompareString(norm.NFC.String(a), norm.NFC.String(b))
}

// Equivalent reports whether a and b are the same name under the
// comparator's folding.
func (c *Comparator) Equivalent(a, b string) bool {
	return c.Compare(a, b) == 0
}
