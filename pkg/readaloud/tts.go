package readaloud

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"google.golang.org/api/iterator"
)

// Default prosody adjustments meaning "no adjustment".
const (
	DefaultRate   = "+0%"
	DefaultVolume = "+0%"
	DefaultPitch  = "+0Hz"
)

// SpeakRequest describes one synthesis request.
type SpeakRequest struct {
	// Text is the plain text to synthesize (required).
	Text string `json:"text" yaml:"text"`

	// Voice is the backend voice name, e.g. en-US-AriaNeural (required).
	Voice string `json:"voice" yaml:"voice"`

	// Rate adjusts speaking rate, e.g. "+10%". Empty means no adjustment.
	Rate string `json:"rate,omitempty" yaml:"rate,omitempty"`

	// Volume adjusts volume, e.g. "-20%". Empty means no adjustment.
	Volume string `json:"volume,omitempty" yaml:"volume,omitempty"`

	// Pitch adjusts pitch, e.g. "+5Hz". Empty means no adjustment.
	Pitch string `json:"pitch,omitempty" yaml:"pitch,omitempty"`
}

func (r *SpeakRequest) rateOrDefault() string {
	if r.Rate == "" {
		return DefaultRate
	}
	return r.Rate
}

func (r *SpeakRequest) volumeOrDefault() string {
	if r.Volume == "" {
		return DefaultVolume
	}
	return r.Volume
}

func (r *SpeakRequest) pitchOrDefault() string {
	if r.Pitch == "" {
		return DefaultPitch
	}
	return r.Pitch
}

// validate rejects requests before any network call is made.
func (r *SpeakRequest) validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return newError(KindInvalidArgument, "empty text", nil)
	}
	if r.Voice == "" {
		return newError(KindInvalidArgument, "missing voice", nil)
	}
	return nil
}

// AudioChunk is one chunk of encoded audio from the stream.
type AudioChunk struct {
	Data []byte
}

// SpeakResult is the complete output of one synthesis session.
type SpeakResult struct {
	// Audio is the encoded audio stream. It may be empty if the backend
	// produced no audio before closing the session.
	Audio []byte
}

// SynthesizeStream runs one synthesis session and yields audio chunks in
// receive order. The session owns its own connection; concurrent calls
// never share state. Cancelling ctx closes the connection and ends the
// iteration with ctx's error.
func (c *Client) SynthesizeStream(ctx context.Context, req *SpeakRequest) iter.Seq2[*AudioChunk, error] {
	return func(yield func(*AudioChunk, error) bool) {
		if err := req.validate(); err != nil {
			yield(nil, err)
			return
		}

		requestID := strings.ReplaceAll(uuid.New().String(), "-", "")

		conn, _, err := c.config.dialer.DialContext(ctx, c.connectURL(time.Now()), c.handshakeHeaders())
		if err != nil {
			yield(nil, newError(KindConnection, "dial synthesis endpoint", err))
			return
		}
		defer conn.Close()

		// Unblock pending reads when the caller cancels.
		watchDone := make(chan struct{})
		defer close(watchDone)
		go func() {
			select {
			case <-ctx.Done():
				conn.Close()
			case <-watchDone:
			}
		}()

		config := textFrame(pathSpeechConfig, "", "application/json", speechConfigBody(c.config.outputFormat))
		if err := conn.WriteMessage(websocket.TextMessage, config); err != nil {
			yield(nil, c.sessionError(ctx, requestID, "send speech.config", err))
			return
		}

		markup := textFrame(pathSSML, requestID, "application/ssml+xml", buildSSML(req))
		if err := conn.WriteMessage(websocket.TextMessage, markup); err != nil {
			yield(nil, c.sessionError(ctx, requestID, "send markup request", err))
			return
		}

		for {
			msgType, data, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() != nil {
					yield(nil, ctx.Err())
					return
				}
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					// Some backend nodes close right after the final
					// audio chunk instead of sending turn.end. Logged
					// separately so truncation on bad networks stays
					// observable. Abnormal close codes (e.g. 1006 from a
					// dropped connection) are transport failures, not a
					// clean end of stream.
					var closeErr *websocket.CloseError
					errors.As(err, &closeErr)
					slog.Debug("readaloud: peer closed session before turn.end",
						"request_id", requestID, "close_code", closeErr.Code)
					return
				}
				yield(nil, c.sessionError(ctx, requestID, "read frame", err))
				return
			}

			switch msgType {
			case websocket.TextMessage:
				if isTurnEnd(data) {
					slog.Debug("readaloud: turn ended", "request_id", requestID)
					return
				}
				// Other text traffic (turn.start, bookkeeping) is ignorable.

			case websocket.BinaryMessage:
				frame, err := parseBinaryFrame(data)
				if err != nil {
					if errors.Is(err, errTruncatedFrame) {
						slog.Warn("readaloud: skipping truncated binary frame",
							"request_id", requestID, "message_size", len(data))
						continue
					}
					yield(nil, &Error{
						Kind:      KindProtocol,
						Message:   "parse binary frame",
						RequestID: requestID,
						Err:       err,
					})
					return
				}
				if !frame.isAudio() || len(frame.payload) == 0 {
					continue
				}
				if !yield(&AudioChunk{Data: frame.payload}, nil) {
					return
				}
			}
		}
	}
}

// Synthesize runs one synthesis session and returns the complete audio.
// A mid-stream failure discards any partially received audio; callers
// may safely retry the whole request.
func (c *Client) Synthesize(ctx context.Context, req *SpeakRequest) (*SpeakResult, error) {
	stream := c.StartSession(ctx, req)
	defer stream.Close()

	var buf bytes.Buffer
	for {
		chunk, err := stream.Next()
		if errors.Is(err, iterator.Done) {
			return &SpeakResult{Audio: buf.Bytes()}, nil
		}
		if err != nil {
			return nil, err
		}
		buf.Write(chunk.Data)
	}
}

// SynthesizeToFile runs one synthesis session and writes the complete
// audio to path. The file is only written after the session finished, so
// a failed or cancelled call never leaves a partial file behind.
func (c *Client) SynthesizeToFile(ctx context.Context, req *SpeakRequest, path string) error {
	result, err := c.Synthesize(ctx, req)
	if err != nil {
		return err
	}
	return os.WriteFile(path, result.Audio, 0o644)
}

// sessionError maps a transport failure to a connection error, unless
// the failure was caused by the caller's cancellation.
func (c *Client) sessionError(ctx context.Context, requestID, message string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return &Error{
		Kind:      KindConnection,
		Message:   message,
		RequestID: requestID,
		Err:       err,
	}
}
