// Package dict implements the in-memory sorted dictionary that backs the
// bot's lookup, define, and search commands.
//
// The dictionary is an ordered sequence of entries kept sorted by a
// locale-aware comparator (case and accent folded). Lookups are binary
// searches over that order; inserts append and re-sort.
//
// # Core Invariant
//
// After any public Store operation completes, the sequence is sorted
// ascending by Comparator(Entry.Name). Binary search is meaningless
// without it, so every mutation re-establishes the order before the
// store's mutex is released.
//
// # Ordering Discipline
//
//   - Comparison is collation-based (golang.org/x/text/collate), primary
//     strength: case and diacritics are folded, base letters are not.
//   - The comparator is constructed once per store and never changes;
//     the order used to sort is the order used to search.
//   - Equivalent names are duplicates. Insert rejects them; lookups over
//     duplicates introduced by direct file edits return some match among
//     the equivalents, with no first/last guarantee.
//
// Persistence lives in internal/lexfile; the store itself is pure memory.
package dict
