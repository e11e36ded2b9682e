package textstream

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadersAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := s.Reader()
	b := s.Reader()

	s.Append("one ")
	s.Append("two ")

	chunk, err := a.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "one ", chunk)

	s.Append("three")
	s.Close()

	// b starts from the beginning regardless of a's position.
	got, err := b.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "one two three", got)

	got, err = a.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "two three", got)
}

func TestNextBlocksUntilAppend(t *testing.T) {
	ctx := context.Background()
	s := New()
	r := s.Reader()

	go func() {
		time.Sleep(10 * time.Millisecond)
		s.Append("late")
		s.Close()
	}()

	chunk, err := r.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "late", chunk)

	_, err = r.Next(ctx)
	assert.Equal(t, io.EOF, err)
}

func TestFailSurfacesAfterDrain(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	s := New()
	s.Append("partial")
	s.Fail(boom)

	r := s.Reader()
	chunk, err := r.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "partial", chunk)

	_, err = r.Next(ctx)
	assert.ErrorIs(t, err, boom)

	_, err = s.Reader().ReadAll(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestAbandonedReaderDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	s := New()

	abandoned := s.Reader()
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err := abandoned.Next(cancelled)
	assert.ErrorIs(t, err, context.Canceled)

	s.Append("still ")
	s.Append("flowing")
	s.Close()

	got, err := s.Reader().ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "still flowing", got)
}

func TestAppendAfterCloseIsDropped(t *testing.T) {
	s := New()
	s.Append("kept")
	s.Close()
	s.Append("dropped")

	got, err := s.Reader().ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "kept", got)
}
