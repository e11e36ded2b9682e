// Package textstream provides a single-producer text chunk sequence that any
// number of independent cursors can replay from the start. One reader can be
// handed to an HTTP response while another accumulates the full text in the
// background; abandoning one cursor never affects the other.
package textstream

import (
	"context"
	"io"
	"strings"
	"sync"
)

type Stream struct {
	mu     sync.Mutex
	chunks []string
	done   bool
	err    error
	wake   chan struct{}
}

func New() *Stream {
	return &Stream{wake: make(chan struct{})}
}

// Append adds a chunk. Appends after Close or Fail are dropped.
func (s *Stream) Append(chunk string) {
	if chunk == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.chunks = append(s.chunks, chunk)
	s.broadcast()
}

// Close marks the stream complete. Readers drain the remaining chunks and
// then receive io.EOF.
func (s *Stream) Close() {
	s.finish(nil)
}

// Fail marks the stream failed. Readers drain the remaining chunks and then
// receive err instead of io.EOF.
func (s *Stream) Fail(err error) {
	s.finish(err)
}

func (s *Stream) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.done = true
	s.err = err
	s.broadcast()
}

func (s *Stream) broadcast() {
	close(s.wake)
	s.wake = make(chan struct{})
}

// Reader returns a new cursor positioned at the start of the stream.
func (s *Stream) Reader() *Reader {
	return &Reader{s: s}
}

type Reader struct {
	s   *Stream
	pos int
}

// Next returns the next chunk, blocking until one is produced. It returns
// io.EOF once a closed stream is drained, or the failure error for a failed
// one.
func (r *Reader) Next(ctx context.Context) (string, error) {
	for {
		r.s.mu.Lock()
		if r.pos < len(r.s.chunks) {
			chunk := r.s.chunks[r.pos]
			r.pos++
			r.s.mu.Unlock()
			return chunk, nil
		}
		if r.s.done {
			err := r.s.err
			r.s.mu.Unlock()
			if err != nil {
				return "", err
			}
			return "", io.EOF
		}
		wake := r.s.wake
		r.s.mu.Unlock()

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-wake:
		}
	}
}

// ReadAll drains the cursor and returns the remaining chunks joined.
func (r *Reader) ReadAll(ctx context.Context) (string, error) {
	var b strings.Builder
	for {
		chunk, err := r.Next(ctx)
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}
		b.WriteString(chunk)
	}
}
