package synth

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/vocalizr/speechkit/pkg/readaloud"
)

var synthTestUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wireAudioFrame frames payload the way the backend does: a big-endian
// header length, a header block containing Path:audio, then the payload.
func wireAudioFrame(payload []byte) []byte {
	header := "Content-Type:audio/mpeg\r\nPath:audio"
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint16(len(header)))
	buf.WriteString(header)
	buf.Write(payload)
	return buf.Bytes()
}

// newTestReadAloudProvider starts a synthesis server that sends the
// given audio chunks for every session and returns a provider bound to
// it.
func newTestReadAloudProvider(t *testing.T, chunks ...[]byte) *ReadAloudProvider {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := synthTestUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		// speech.config and ssml frames.
		conn.ReadMessage()
		conn.ReadMessage()

		for _, chunk := range chunks {
			conn.WriteMessage(websocket.BinaryMessage, wireAudioFrame(chunk))
		}
		conn.WriteMessage(websocket.TextMessage, []byte("Path:turn.end\r\n\r\n{}"))
	}))
	t.Cleanup(srv.Close)

	client := readaloud.NewClient(
		readaloud.WithEndpoint("ws" + strings.TrimPrefix(srv.URL, "http")))
	provider, err := NewReadAloudProvider(client, NewCatalog())
	if err != nil {
		t.Fatalf("NewReadAloudProvider: %v", err)
	}
	return provider
}

func TestReadAloudProviderSynthesize(t *testing.T) {
	provider := newTestReadAloudProvider(t, []byte("hello-"), []byte("audio"))

	path := t.TempDir() + "/out.mp3"
	err := provider.Synthesize(context.Background(), &Request{
		Text:    "Hello",
		VoiceID: "en-US-AriaNeural",
		Rate:    "+10%",
	}, path)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "hello-audio" {
		t.Errorf("file = %q", data)
	}
}

func TestReadAloudProviderStream(t *testing.T) {
	provider := newTestReadAloudProvider(t, []byte("stream-audio"))

	stream, err := provider.Stream(context.Background(), &Request{
		Text:    "Hello",
		VoiceID: "zu-ZA-ThembaNeural",
	})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	if string(data) != "stream-audio" {
		t.Errorf("stream = %q", data)
	}
}

func TestReadAloudProviderStreamEmptyAudio(t *testing.T) {
	provider := newTestReadAloudProvider(t) // no chunks at all

	stream, err := provider.Stream(context.Background(), &Request{
		Text:    "Hello",
		VoiceID: "en-US-AriaNeural",
	})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if stream != nil {
		t.Error("zero-audio session must yield a nil stream, not an error or data")
	}
}

func TestReadAloudProviderUnknownVoice(t *testing.T) {
	client := readaloud.NewClient(readaloud.WithEndpoint("ws://127.0.0.1:1"))
	provider, err := NewReadAloudProvider(client, NewCatalog())
	if err != nil {
		t.Fatalf("NewReadAloudProvider: %v", err)
	}

	err = provider.Synthesize(context.Background(), &Request{
		Text:    "Hello",
		VoiceID: "not-a-voice",
	}, t.TempDir()+"/out.mp3")
	if !errors.Is(err, ErrUnknownVoice) {
		t.Fatalf("err = %v, want ErrUnknownVoice", err)
	}
	var synthErr *SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("err = %T, want *SynthesisError", err)
	}
}

func TestReadAloudProviderBadCatalog(t *testing.T) {
	client := readaloud.NewClient()
	_, err := NewReadAloudProvider(client, NewCatalogFromData([]byte("garbage")))
	if !errors.Is(err, ErrCatalogLoad) {
		t.Fatalf("err = %v, want ErrCatalogLoad", err)
	}
}

func TestReadAloudProviderVoicesAndLanguages(t *testing.T) {
	provider := newTestReadAloudProvider(t)

	voices := provider.Voices()
	if len(voices) == 0 {
		t.Fatal("no voices")
	}
	if len(provider.Languages()) != len(Languages()) {
		t.Error("readaloud supports the full locale table")
	}
}

func TestReadAloudProviderConcurrentCalls(t *testing.T) {
	provider := newTestReadAloudProvider(t, []byte("concurrent-audio"))

	var wg sync.WaitGroup
	outputs := make([][]byte, 4)
	errs := make([]error, 4)
	for i := range outputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stream, err := provider.Stream(context.Background(), &Request{
				Text:    "Hello",
				VoiceID: "en-US-AriaNeural",
			})
			if err != nil {
				errs[i] = err
				return
			}
			outputs[i], errs[i] = io.ReadAll(stream)
			stream.Close()
		}()
	}
	wg.Wait()

	for i := range outputs {
		if errs[i] != nil {
			t.Fatalf("call %d: %v", i, errs[i])
		}
		if string(outputs[i]) != "concurrent-audio" {
			t.Errorf("call %d produced %q", i, outputs[i])
		}
	}
}
