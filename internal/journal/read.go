package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Invocation is one journaled command dispatch.
type Invocation struct {
	ID      string
	Command string
	Args    []string
	Author  string
	Seq     int64
}

// Outcome is the journaled reply for one invocation.
type Outcome struct {
	InvocationID string
	Status       string
	Message      string
	Seq          int64
}

// ReadInvocation retrieves a single invocation by ID.
// Returns sql.ErrNoRows if not found.
func (j *Journal) ReadInvocation(ctx context.Context, id string) (Invocation, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT id, command, args, author, seq
		FROM invocations
		WHERE id = ?
	`, id)

	return scanInvocation(row.Scan)
}

// ReadOutcome retrieves the outcome for an invocation.
// Returns sql.ErrNoRows if the invocation has no recorded outcome.
func (j *Journal) ReadOutcome(ctx context.Context, invocationID string) (Outcome, error) {
	var o Outcome
	err := j.db.QueryRowContext(ctx, `
		SELECT invocation_id, status, message, seq
		FROM outcomes
		WHERE invocation_id = ?
	`, invocationID).Scan(&o.InvocationID, &o.Status, &o.Message, &o.Seq)
	if err != nil {
		return Outcome{}, err
	}
	return o, nil
}

// ReadRecent returns the n most recent invocations, newest first.
// Ordering is seq DESC with id as the tie-breaker so results are
// deterministic. Returns an empty slice (not nil) when the journal
// is empty.
func (j *Journal) ReadRecent(ctx context.Context, n int) ([]Invocation, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, command, args, author, seq
		FROM invocations
		ORDER BY seq DESC, id DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("query recent invocations: %w", err)
	}
	defer rows.Close()

	invocations := []Invocation{}
	for rows.Next() {
		inv, err := scanInvocation(rows.Scan)
		if err != nil {
			return nil, err
		}
		invocations = append(invocations, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invocations: %w", err)
	}

	return invocations, nil
}

// CountInvocations returns the total number of journaled invocations.
func (j *Journal) CountInvocations(ctx context.Context) (int, error) {
	var count int
	err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invocations`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count invocations: %w", err)
	}
	return count, nil
}

// scanInvocation scans one row via the given Scan function, decoding the
// args JSON column.
func scanInvocation(scan func(...any) error) (Invocation, error) {
	var inv Invocation
	var argsJSON string

	if err := scan(&inv.ID, &inv.Command, &argsJSON, &inv.Author, &inv.Seq); err != nil {
		if err == sql.ErrNoRows {
			return Invocation{}, err
		}
		return Invocation{}, fmt.Errorf("scan invocation: %w", err)
	}

	if err := json.Unmarshal([]byte(argsJSON), &inv.Args); err != nil {
		return Invocation{}, fmt.Errorf("decode args for %s: %w", inv.ID, err)
	}

	return inv, nil
}
