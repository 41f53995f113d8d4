package lexfile

import "errors"

// ErrFlusherClosed is returned by futures enqueued after Close.
var ErrFlusherClosed = errors.New("lexfile: flusher closed")
