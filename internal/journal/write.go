package journal

import (
	"context"
	"encoding/json"
	"fmt"
)

// RecordInvocation inserts a dispatched command into the journal.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are
// silently ignored. Other constraint violations still return errors.
//
// Implements the dispatcher's Recorder interface.
func (j *Journal) RecordInvocation(ctx context.Context, id, command string, args []string, author string, seq int64) error {
	if args == nil {
		args = []string{}
	}
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("record invocation: marshal args: %w", err)
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO invocations (id, command, args, author, seq)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, command, string(argsJSON), author, seq)
	if err != nil {
		return fmt.Errorf("record invocation: %w", err)
	}

	return nil
}

// RecordOutcome inserts the reply for an invocation.
// Each invocation has exactly ONE outcome (UNIQUE constraint on
// invocation_id); duplicate writes are silently ignored.
//
// The invocation referenced by invocationID must already be recorded
// (foreign key constraint).
func (j *Journal) RecordOutcome(ctx context.Context, invocationID, status, message string, seq int64) error {
	// ON CONFLICT DO NOTHING handles a second outcome for the same
	// invocation; the first reply is the reply of record.
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO outcomes (invocation_id, status, message, seq)
		VALUES (?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, invocationID, status, message, seq)
	if err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}

	return nil
}
