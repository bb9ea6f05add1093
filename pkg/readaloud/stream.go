package readaloud

import (
	"context"
	"iter"

	"google.golang.org/api/iterator"
)

// AudioStream is a pull-style view of one synthesis session. Next blocks
// until the next audio chunk arrives and returns iterator.Done after the
// final chunk. Callers that stop early must Close the stream to release
// the underlying connection.
type AudioStream struct {
	next func() (*AudioChunk, error, bool)
	stop func()
}

// StartSession begins a synthesis session and returns its audio as a
// pull stream. The push-style SynthesizeStream is the primitive; this
// adapter suits callers that interleave reading with other work.
func (c *Client) StartSession(ctx context.Context, req *SpeakRequest) *AudioStream {
	next, stop := iter.Pull2(c.SynthesizeStream(ctx, req))
	return &AudioStream{next: next, stop: stop}
}

// Next returns the next audio chunk, or iterator.Done when the session
// finished cleanly.
func (s *AudioStream) Next() (*AudioChunk, error) {
	chunk, err, ok := s.next()
	if !ok {
		return nil, iterator.Done
	}
	if err != nil {
		return nil, err
	}
	return chunk, nil
}

// Close ends the session. Safe to call after Next returned iterator.Done.
func (s *AudioStream) Close() {
	s.stop()
}
