// Package lexfile is the persistence adapter for the dictionary.
//
// The on-disk format is a JSON array of records:
//
//	[
//	  {
//	    "entry": "apple",
//	    "definition": "a red fruit",
//	    "author": "alice"
//	  }
//	]
//
// pretty-printed with 2-space indentation so the file stays human-diffable.
//
// Load validates every record against a CUE schema before accepting it;
// records that fail validation are quarantined and reported rather than
// silently carried into the store, where a missing name would otherwise
// surface as a comparison failure mid-sort.
//
// Save writes atomically (temp file + rename): a crash mid-write leaves
// the previous file intact, never a truncated one.
//
// The adapter holds no state: Load and Save are a pure function pair over
// a path and a snapshot. The Flusher adds a single-writer queue on top so
// that mutating callers get an observable completion for each write
// instead of fire-and-forget semantics.
package lexfile
