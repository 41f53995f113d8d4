package lexfile

import (
	"context"
	"log/slog"
	"sync"

	"github.com/roach88/lexibot/internal/dict"
)

// FlushResult is the observable outcome of one enqueued write.
// Callers that care about durability call Wait; callers that don't can
// drop it and rely on the flusher's logging.
type FlushResult struct {
	done chan struct{}
	err  error // set before done is closed
}

// Wait blocks until the write completes or ctx is cancelled.
// Returns the write error, or ctx.Err() if cancelled first.
func (r *FlushResult) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		return r.err
	}
}

// Done returns a channel that closes when the write has completed.
func (r *FlushResult) Done() <-chan struct{} {
	return r.done
}

func (r *FlushResult) resolve(err error) {
	r.err = err
	close(r.done)
}

// flushJob pairs a snapshot with the futures awaiting its write.
type flushJob struct {
	snapshot []dict.Entry
	results  []*FlushResult
}

// Flusher serializes dictionary writes through a single-writer loop.
//
// Mutating callers enqueue a snapshot and get back a FlushResult; the Run
// loop performs the actual Save calls one at a time. Pending snapshots are
// coalesced: if several writes queue up while one is in flight, only the
// newest snapshot hits the disk and every waiting future resolves with
// that write's outcome. The file is last-writer-wins, so intermediate
// snapshots carry no information the final one doesn't.
//
// Thread-safety model:
//   - Enqueue(): safe from any goroutine
//   - Run(): must be called from exactly one goroutine
//
// The signal channel is buffered with size 1 so multiple Enqueues coalesce
// into a single wakeup.
type Flusher struct {
	path   string
	logger *slog.Logger

	mu      sync.Mutex
	pending *flushJob
	closed  bool
	signal  chan struct{}
}

// NewFlusher creates a flusher that writes to path.
// A nil logger defaults to slog.Default().
func NewFlusher(path string, logger *slog.Logger) *Flusher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Flusher{
		path:   path,
		logger: logger,
		signal: make(chan struct{}, 1),
	}
}

// Enqueue submits a snapshot for writing and returns its future.
// Thread-safe: may be called from any goroutine.
//
// If the flusher is closed, the returned result is already resolved with
// ErrFlusherClosed.
func (f *Flusher) Enqueue(snapshot []dict.Entry) *FlushResult {
	res := &FlushResult{done: make(chan struct{})}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		res.resolve(ErrFlusherClosed)
		return res
	}

	if f.pending == nil {
		f.pending = &flushJob{snapshot: snapshot, results: []*FlushResult{res}}
	} else {
		// Coalesce: newer snapshot supersedes the queued one, earlier
		// waiters resolve with the superseding write's outcome.
		f.pending.snapshot = snapshot
		f.pending.results = append(f.pending.results, res)
	}

	select {
	case f.signal <- struct{}{}:
	default:
	}

	return res
}

// Run starts the single-writer flush loop. Blocks until ctx is cancelled
// or Close is called. Must be called from exactly one goroutine.
//
// On cancellation, any pending write is attempted once before returning
// so an accepted Enqueue is not silently dropped.
func (f *Flusher) Run(ctx context.Context) error {
	f.logger.Info("flusher starting", "path", f.path)

	for {
		if job := f.takePending(); job != nil {
			f.write(job)
			continue
		}

		// Check closed before blocking: the Close signal may have been
		// coalesced with an Enqueue signal consumed on a previous pass.
		f.mu.Lock()
		closed := f.closed
		f.mu.Unlock()
		if closed {
			f.logger.Info("flusher stopping: closed")
			return nil
		}

		select {
		case <-ctx.Done():
			f.closeQueue()
			if job := f.takePending(); job != nil {
				f.write(job)
			}
			f.logger.Info("flusher stopping: context cancelled")
			return ctx.Err()

		case <-f.signal:
			// Wakeup - loop back to takePending.
		}
	}
}

// Close signals that no more snapshots will be enqueued.
// Wakes the Run loop, which drains any pending write and returns.
func (f *Flusher) Close() {
	f.closeQueue()
	select {
	case f.signal <- struct{}{}:
	default:
	}
}

func (f *Flusher) closeQueue() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *Flusher) takePending() *flushJob {
	f.mu.Lock()
	defer f.mu.Unlock()
	job := f.pending
	f.pending = nil
	return job
}

// write performs one Save and resolves every future waiting on it.
// Write failure degrades to logging: the in-memory store remains
// authoritative for the rest of the process.
func (f *Flusher) write(job *flushJob) {
	err := Save(f.path, job.snapshot)
	if err != nil {
		f.logger.Error("dictionary write failed",
			"path", f.path,
			"entries", len(job.snapshot),
			"error", err,
		)
	} else {
		f.logger.Debug("dictionary written",
			"path", f.path,
			"entries", len(job.snapshot),
		)
	}

	for _, res := range job.results {
		res.resolve(err)
	}
}
