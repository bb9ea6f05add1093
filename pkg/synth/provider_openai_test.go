package synth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

// newTestOpenAIProvider starts a fake speech endpoint returning audio
// and a provider pointed at it.
func newTestOpenAIProvider(t *testing.T, audio []byte) (*OpenAIProvider, *[]map[string]any) {
	t.Helper()

	var requests []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/speech" {
			http.NotFound(w, r)
			return
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		requests = append(requests, body)

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(audio)
	}))
	t.Cleanup(srv.Close)

	return NewOpenAIProvider("test-key", WithOpenAIBaseURL(srv.URL)), &requests
}

func TestOpenAIProviderSynthesize(t *testing.T) {
	provider, requests := newTestOpenAIProvider(t, []byte("openai-audio"))

	path := t.TempDir() + "/out.mp3"
	err := provider.Synthesize(context.Background(), &Request{
		Text:    "Hello",
		VoiceID: "nova",
		Rate:    "+10%",
	}, path)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "openai-audio" {
		t.Errorf("file = %q", data)
	}

	if len(*requests) != 1 {
		t.Fatalf("got %d requests", len(*requests))
	}
	req := (*requests)[0]
	if req["voice"] != "nova" || req["input"] != "Hello" {
		t.Errorf("request body = %v", req)
	}
	if speed, ok := req["speed"].(float64); !ok || speed < 1.09 || speed > 1.11 {
		t.Errorf("speed = %v, want 1.1", req["speed"])
	}
}

func TestOpenAIProviderStream(t *testing.T) {
	provider, _ := newTestOpenAIProvider(t, []byte("stream-bytes"))

	stream, err := provider.Stream(context.Background(), &Request{
		Text:    "Hello",
		VoiceID: "alloy",
	})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	defer stream.Close()

	data, _ := io.ReadAll(stream)
	if string(data) != "stream-bytes" {
		t.Errorf("stream = %q", data)
	}
}

func TestOpenAIProviderRejectsUnknownVoice(t *testing.T) {
	provider, requests := newTestOpenAIProvider(t, []byte("x"))

	_, err := provider.Stream(context.Background(), &Request{
		Text:    "Hello",
		VoiceID: "en-US-AriaNeural", // readaloud voice, not an OpenAI one
	})
	if !errors.Is(err, ErrUnknownVoice) {
		t.Fatalf("err = %v, want ErrUnknownVoice", err)
	}
	if len(*requests) != 0 {
		t.Error("unknown voice reached the network")
	}
}

func TestOpenAIProviderRejectsEmptyText(t *testing.T) {
	provider, requests := newTestOpenAIProvider(t, []byte("x"))

	err := provider.Synthesize(context.Background(), &Request{
		Text:    "  ",
		VoiceID: "alloy",
	}, t.TempDir()+"/out.mp3")
	var synthErr *SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("err = %v, want *SynthesisError", err)
	}
	if len(*requests) != 0 {
		t.Error("empty text reached the network")
	}
}

func TestRateToSpeed(t *testing.T) {
	tests := []struct {
		rate string
		want float64
		ok   bool
	}{
		{"", 0, false},
		{"+0%", 0, false},
		{"+10%", 1.1, true},
		{"-50%", 0.5, true},
		{"+400%", 4.0, true},  // clamped
		{"-90%", 0.25, true},  // clamped
		{"garbage", 0, false},
	}
	for _, tt := range tests {
		got, ok := rateToSpeed(tt.rate)
		if ok != tt.ok {
			t.Errorf("rateToSpeed(%q) ok = %v, want %v", tt.rate, ok, tt.ok)
			continue
		}
		if ok && (got < tt.want-0.001 || got > tt.want+0.001) {
			t.Errorf("rateToSpeed(%q) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}
