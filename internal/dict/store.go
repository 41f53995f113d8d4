package dict

import (
	"sort"
	"strings"
	"sync"
)

// Store holds the dictionary as an ordered sequence of entries.
//
// INVARIANT: after any public operation completes, the sequence is sorted
// ascending by Comparator(Entry.Name). Binary search is never run while
// the invariant is violated, because every mutation re-establishes it
// before releasing the mutex.
//
// Thread-safety model:
//   - All public operations take the mutex; mutations (Insert) are fully
//     serialized, so two racing defines for the same name cannot both pass
//     the existence check.
//   - The store exclusively owns its entry slice. Snapshot() hands out
//     copies; callers never see the live backing array.
//
// Lifecycle: construct from the loaded sequence, call Init exactly once to
// establish the sort invariant, then serve lookups and inserts for the
// process lifetime.
type Store struct {
	mu      sync.Mutex
	cmp     *Comparator
	entries []Entry
}

// NewStore creates a store over the loaded sequence. The slice is copied;
// the caller's backing array is not retained. Init must be called before
// the first lookup.
func NewStore(cmp *Comparator, entries []Entry) *Store {
	copied := make([]Entry, len(entries))
	copy(copied, entries)
	return &Store{cmp: cmp, entries: copied}
}

// Init sorts the sequence and establishes the sortedness invariant.
//
// The sort is stable so that entries equivalent under the comparator
// (duplicates introduced by direct file edits) keep their load order, and
// so that sorting an already-sorted sequence is a no-op.
func (s *Store) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortLocked()
}

func (s *Store) sortLocked() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.cmp.Compare(s.entries[i].Name, s.entries[j].Name) < 0
	})
}

// Count returns the current number of entries.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Find looks up an entry by name using binary search over the ordered
// sequence. O(log n) comparisons. If several entries are equivalent to
// name under the comparator, any one of them may be returned.
func (s *Store) Find(name string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.searchLocked(name); i >= 0 {
		return s.entries[i], true
	}
	return Entry{}, false
}

// searchLocked is the binary search core. Returns the index of an entry
// whose name is comparator-equivalent to name, or -1 if none exists.
func (s *Store) searchLocked(name string) int {
	start, end := 0, len(s.entries)-1
	for start <= end {
		middle := (start + end) / 2
		switch c := s.cmp.Compare(s.entries[middle].Name, name); {
		case c == 0:
			return middle
		case c < 0:
			start = middle + 1
		default:
			end = middle - 1
		}
	}
	return -1
}

// Insert adds a new entry unless one equivalent to name already exists.
//
// On success the new entry is appended and the full sequence re-sorted.
// The full re-sort (rather than an incremental insertion) is intentional:
// inserts are low-frequency, human-triggered events, and n log n per
// insert keeps the code trivially correct.
//
// Returns (existing, false) when an equivalent entry already exists, so
// the caller can surface the current definition and author. Returns
// (inserted, true) otherwise. A duplicate is a normal outcome, not an
// error.
func (s *Store) Insert(name, definition, author string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.searchLocked(name); i >= 0 {
		return s.entries[i], false
	}

	e := Entry{Name: name, Definition: definition, Author: author}
	s.entries = append(s.entries, e)
	s.sortLocked()
	return e, true
}

// Search returns all entries whose definition contains substring,
// case-insensitively, in store order. Plain lowercase containment, not
// locale-aware collation: search is a convenience scan over free text,
// not a keyed lookup. Returns an empty slice (never nil) when nothing
// matches.
func (s *Store) Search(substring string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(substring)
	matches := []Entry{}
	for _, e := range s.entries {
		if strings.Contains(strings.ToLower(e.Definition), needle) {
			matches = append(matches, e)
		}
	}
	return matches
}

// Snapshot returns a copy of the current sequence, in store order.
// Used to hand a consistent view to the persistence flusher.
func (s *Store) Snapshot() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]Entry, len(s.entries))
	copy(copied, s.entries)
	return copied
}
