package synth

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"testing"
)

// fakeProvider is a minimal in-memory Provider for registry tests.
type fakeProvider struct {
	id    string
	audio []byte

	// block, when non-nil, stalls synthesis until closed. started is
	// closed once the first call has entered the provider.
	block   chan struct{}
	started chan struct{}

	startOnce sync.Once
	mu        sync.Mutex
	calls     int
}

var _ Provider = (*fakeProvider)(nil)

func (f *fakeProvider) ID() string { return f.id }

func (f *fakeProvider) Voices() []VoiceDescriptor {
	return []VoiceDescriptor{{ID: f.id + "-voice", DisplayName: f.id, LanguageRegion: "en-US"}}
}

func (f *fakeProvider) Languages() []LanguageDescriptor {
	return Languages()
}

func (f *fakeProvider) Synthesize(ctx context.Context, req *Request, path string) error {
	audio, err := f.run(ctx)
	if err != nil {
		return err
	}
	return os.WriteFile(path, audio, 0o644)
}

func (f *fakeProvider) Stream(ctx context.Context, req *Request) (io.ReadCloser, error) {
	audio, err := f.run(ctx)
	if err != nil {
		return nil, err
	}
	if len(audio) == 0 {
		return nil, nil
	}
	return io.NopCloser(bytes.NewReader(audio)), nil
}

func (f *fakeProvider) run(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.started != nil {
		f.startOnce.Do(func() { close(f.started) })
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.audio, nil
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(
		&fakeProvider{id: "a"},
		&fakeProvider{id: "b"},
		&fakeProvider{id: "a"},
	)
	if !errors.Is(err, ErrDuplicateProvider) {
		t.Fatalf("err = %v, want ErrDuplicateProvider", err)
	}
}

func TestNewRegistryRejectsEmpty(t *testing.T) {
	_, err := NewRegistry()
	if !errors.Is(err, ErrNoProviders) {
		t.Fatalf("err = %v, want ErrNoProviders", err)
	}
}

func TestRegistryOrderAndDefault(t *testing.T) {
	r, err := NewRegistry(
		&fakeProvider{id: "primary"},
		&fakeProvider{id: "fallback"},
		&fakeProvider{id: "extra"},
	)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	ids := r.ProviderIDs()
	want := []string{"primary", "fallback", "extra"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v", ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
	if r.CurrentID() != "primary" {
		t.Errorf("current = %q, want primary", r.CurrentID())
	}
}

func TestRegistrySwitch(t *testing.T) {
	r, err := NewRegistry(&fakeProvider{id: "a"}, &fakeProvider{id: "b"})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if err := r.Switch("b"); err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if r.CurrentID() != "b" {
		t.Errorf("current = %q, want b", r.CurrentID())
	}

	err = r.Switch("nope")
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("err = %v, want ErrUnknownProvider", err)
	}
	if r.CurrentID() != "b" {
		t.Errorf("failed switch changed current to %q", r.CurrentID())
	}
}

func TestRegistryDelegation(t *testing.T) {
	a := &fakeProvider{id: "a", audio: []byte("a-audio")}
	b := &fakeProvider{id: "b", audio: []byte("b-audio")}
	r, err := NewRegistry(a, b)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	stream, err := r.Stream(context.Background(), &Request{Text: "hi", VoiceID: "a-voice"})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	data, _ := io.ReadAll(stream)
	stream.Close()
	if string(data) != "a-audio" {
		t.Errorf("stream = %q, want a-audio", data)
	}

	if err := r.Switch("b"); err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if got := r.Voices()[0].ID; got != "b-voice" {
		t.Errorf("voices delegate to %q", got)
	}

	path := t.TempDir() + "/out.mp3"
	if err := r.Synthesize(context.Background(), &Request{Text: "hi", VoiceID: "b-voice"}, path); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "b-audio" {
		t.Errorf("file = %q, want b-audio", data)
	}
}

func TestRegistrySharedBackendRegistrations(t *testing.T) {
	// The same backend may be registered twice under different ids;
	// the registry deduplicates by id only.
	a := &fakeProvider{id: "edge", audio: []byte("x")}
	b := &fakeProvider{id: "edge-fallback", audio: []byte("x")}
	if _, err := NewRegistry(a, b); err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
}

func TestRegistryInFlightCallsPinProvider(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	slow := &fakeProvider{id: "slow", audio: []byte("slow-audio"), block: release, started: started}
	fast := &fakeProvider{id: "fast", audio: []byte("fast-audio")}
	r, err := NewRegistry(slow, fast)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		stream, err := r.Stream(context.Background(), &Request{Text: "hi", VoiceID: "slow-voice"})
		if err != nil {
			done <- result{err: err}
			return
		}
		data, _ := io.ReadAll(stream)
		done <- result{data: data}
	}()

	// Switch while the first call is blocked inside "slow".
	<-started
	if err := r.Switch("fast"); err != nil {
		t.Fatalf("Switch: %v", err)
	}
	close(release)

	res := <-done
	if res.err != nil {
		t.Fatalf("in-flight call failed: %v", res.err)
	}
	if string(res.data) != "slow-audio" {
		t.Errorf("in-flight call got %q, want the provider it started with", res.data)
	}
}

func TestRegistryConcurrentSwitchAndRead(t *testing.T) {
	r, err := NewRegistry(&fakeProvider{id: "a"}, &fakeProvider{id: "b"})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 100 {
				r.Switch("b")
				r.Switch("a")
			}
		}()
		go func() {
			defer wg.Done()
			for range 100 {
				id := r.CurrentID()
				if id != "a" && id != "b" {
					t.Errorf("torn current id %q", id)
					return
				}
				r.Voices()
			}
		}()
	}
	wg.Wait()
}
