package lexfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"

	"github.com/roach88/lexibot/internal/dict"
)

// entrySchema is the CUE schema every loaded record must satisfy: the
// shape and field types. Domain rules (non-empty name and author) are
// enforced by dict.Entry.Validate after decoding.
const entrySchema = `{
	entry:      string
	definition: string
	author:     string
}`

// QuarantinedRecord is a loaded record that failed schema validation.
// It is excluded from the store but reported to the caller so the
// operator can repair the file.
type QuarantinedRecord struct {
	Index int             // position in the JSON array
	Raw   json.RawMessage // the offending record as written
	Err   error
}

// LoadResult holds the accepted entries and any quarantined records.
type LoadResult struct {
	Entries     []dict.Entry
	Quarantined []QuarantinedRecord
}

// Load reads the dictionary document at path.
//
// A missing file, unreadable file, or malformed JSON document is returned
// as an error; the caller decides whether that is fatal (strict mode) or
// degrades to an empty store. Individual records that parse as JSON but
// fail the entry schema or its validation rules are quarantined, not fatal.
func Load(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse dictionary %s: %w", path, err)
	}

	cuectx := cuecontext.New()
	schema := cuectx.CompileString(entrySchema)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile entry schema: %w", err)
	}

	result := &LoadResult{Entries: []dict.Entry{}}
	for i, rec := range raw {
		if err := validateRecord(cuectx, schema, rec); err != nil {
			result.Quarantined = append(result.Quarantined, QuarantinedRecord{
				Index: i,
				Raw:   rec,
				Err:   err,
			})
			continue
		}

		var e dict.Entry
		if err := json.Unmarshal(rec, &e); err != nil {
			result.Quarantined = append(result.Quarantined, QuarantinedRecord{
				Index: i,
				Raw:   rec,
				Err:   err,
			})
			continue
		}
		if err := e.Validate(i); err != nil {
			result.Quarantined = append(result.Quarantined, QuarantinedRecord{
				Index: i,
				Raw:   rec,
				Err:   err,
			})
			continue
		}
		result.Entries = append(result.Entries, e)
	}

	return result, nil
}

// validateRecord unifies one raw record with the entry schema.
func validateRecord(cuectx *cue.Context, schema cue.Value, rec json.RawMessage) error {
	expr, err := cuejson.Extract("entry", rec)
	if err != nil {
		return fmt.Errorf("not a JSON object: %w", err)
	}

	val := cuectx.BuildExpr(expr)
	if err := val.Err(); err != nil {
		return err
	}

	unified := schema.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return err
	}
	return nil
}

// Save serializes the full sequence to indented JSON and atomically
// replaces the file at path.
func Save(path string, entries []dict.Entry) error {
	if entries == nil {
		entries = []dict.Entry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dictionary: %w", err)
	}
	data = append(data, '\n')

	return WriteAtomic(path, data)
}

// WriteAtomic replaces the file at path via a temp file and rename. The
// temp file lives in the same directory so the rename cannot cross
// filesystems; a crash mid-write leaves the previous file untouched.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".lexibot-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
