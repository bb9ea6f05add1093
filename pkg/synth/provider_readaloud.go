package synth

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vocalizr/speechkit/pkg/readaloud"
)

// ProviderIDReadAloud is the default id of the readaloud provider.
const ProviderIDReadAloud = "edge-readaloud"

// ReadAloudProvider binds a readaloud protocol client and the bundled
// voice catalog behind the Provider contract.
type ReadAloudProvider struct {
	id      string
	client  *readaloud.Client
	catalog *Catalog
}

var _ Provider = (*ReadAloudProvider)(nil)

// ReadAloudOption configures a ReadAloudProvider.
type ReadAloudOption func(*ReadAloudProvider)

// WithReadAloudID overrides the provider id. Useful when the same
// backend is registered twice, e.g. as primary and fallback.
func WithReadAloudID(id string) ReadAloudOption {
	return func(p *ReadAloudProvider) {
		p.id = id
	}
}

// NewReadAloudProvider creates a readaloud provider. The catalog is
// loaded eagerly; a bad voice data file fails construction and affects
// this provider only.
func NewReadAloudProvider(client *readaloud.Client, catalog *Catalog, opts ...ReadAloudOption) (*ReadAloudProvider, error) {
	p := &ReadAloudProvider{
		id:      ProviderIDReadAloud,
		client:  client,
		catalog: catalog,
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := catalog.Initialize(); err != nil {
		return nil, err
	}
	return p, nil
}

// ID returns the provider id.
func (p *ReadAloudProvider) ID() string { return p.id }

// Voices returns the catalog's voice descriptors.
func (p *ReadAloudProvider) Voices() []VoiceDescriptor {
	voices, _ := p.catalog.Voices()
	return voices
}

// Languages returns the full locale table; the backend carries voices
// for every locale the application offers.
func (p *ReadAloudProvider) Languages() []LanguageDescriptor {
	return Languages()
}

// Synthesize runs one protocol session and writes the audio to path.
func (p *ReadAloudProvider) Synthesize(ctx context.Context, req *Request, path string) error {
	speak, err := p.buildRequest(req)
	if err != nil {
		return err
	}
	result, err := p.client.Synthesize(ctx, speak)
	if err != nil {
		return synthesisError(p.id, err)
	}
	if err := os.WriteFile(path, result.Audio, 0o644); err != nil {
		return synthesisError(p.id, err)
	}
	return nil
}

// Stream runs one protocol session and returns the audio as a reader.
// A session that legitimately produced zero audio yields (nil, nil).
func (p *ReadAloudProvider) Stream(ctx context.Context, req *Request) (io.ReadCloser, error) {
	speak, err := p.buildRequest(req)
	if err != nil {
		return nil, err
	}
	result, err := p.client.Synthesize(ctx, speak)
	if err != nil {
		return nil, synthesisError(p.id, err)
	}
	if len(result.Audio) == 0 {
		return nil, nil
	}
	return io.NopCloser(bytes.NewReader(result.Audio)), nil
}

// buildRequest maps the generic request onto the protocol client,
// rejecting unknown voice ids before any connection is opened.
func (p *ReadAloudProvider) buildRequest(req *Request) (*readaloud.SpeakRequest, error) {
	if _, ok := p.catalog.Voice(req.VoiceID); !ok {
		return nil, &SynthesisError{
			Provider: p.id,
			Err:      fmt.Errorf("%w: %q", ErrUnknownVoice, req.VoiceID),
		}
	}
	return &readaloud.SpeakRequest{
		Text:   req.Text,
		Voice:  req.VoiceID,
		Rate:   req.Rate,
		Volume: req.Volume,
		Pitch:  req.Pitch,
	}, nil
}
