package synth

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ProviderIDOpenAI is the default id of the OpenAI speech provider.
const ProviderIDOpenAI = "openai-speech"

// openaiVoices is the fixed voice set of the OpenAI speech endpoint.
// The voices are multilingual; they are tagged en-US in the catalog.
var openaiVoices = []VoiceDescriptor{
	{ID: "alloy", DisplayName: "Alloy", Gender: "Female", LanguageRegion: "en-US", Category: "General"},
	{ID: "echo", DisplayName: "Echo", Gender: "Male", LanguageRegion: "en-US", Category: "General"},
	{ID: "fable", DisplayName: "Fable", Gender: "Male", LanguageRegion: "en-US", Category: "General"},
	{ID: "onyx", DisplayName: "Onyx", Gender: "Male", LanguageRegion: "en-US", Category: "General"},
	{ID: "nova", DisplayName: "Nova", Gender: "Female", LanguageRegion: "en-US", Category: "General"},
	{ID: "shimmer", DisplayName: "Shimmer", Gender: "Female", LanguageRegion: "en-US", Category: "General"},
}

// OpenAIProvider adapts the OpenAI speech endpoint to the Provider
// contract. It is the secondary backend; unlike readaloud it has no
// bundled catalog, only the endpoint's fixed voice set.
type OpenAIProvider struct {
	id     string
	client *openai.Client
	model  openai.SpeechModel
	byID   map[string]VoiceDescriptor
}

var _ Provider = (*OpenAIProvider)(nil)

// openaiConfig holds OpenAI provider configuration.
type openaiConfig struct {
	id      string
	model   openai.SpeechModel
	baseURL string
}

// OpenAIOption configures an OpenAIProvider.
type OpenAIOption func(*openaiConfig)

// WithOpenAIID overrides the provider id.
func WithOpenAIID(id string) OpenAIOption {
	return func(c *openaiConfig) {
		c.id = id
	}
}

// WithOpenAIModel sets the speech model. Default: tts-1.
func WithOpenAIModel(model openai.SpeechModel) OpenAIOption {
	return func(c *openaiConfig) {
		c.model = model
	}
}

// WithOpenAIBaseURL sets a custom API base URL, e.g. for an
// OpenAI-compatible gateway.
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(c *openaiConfig) {
		c.baseURL = url
	}
}

// NewOpenAIProvider creates an OpenAI speech provider.
func NewOpenAIProvider(apiKey string, opts ...OpenAIOption) *OpenAIProvider {
	cfg := openaiConfig{
		id:    ProviderIDOpenAI,
		model: openai.SpeechModelTTS1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.baseURL))
	}
	client := openai.NewClient(clientOpts...)

	p := &OpenAIProvider{
		id:     cfg.id,
		client: &client,
		model:  cfg.model,
		byID:   make(map[string]VoiceDescriptor, len(openaiVoices)),
	}
	for _, v := range openaiVoices {
		p.byID[v.ID] = v
	}
	return p
}

// ID returns the provider id.
func (p *OpenAIProvider) ID() string { return p.id }

// Voices returns the endpoint's fixed voice set.
func (p *OpenAIProvider) Voices() []VoiceDescriptor {
	return openaiVoices
}

// Languages returns the full locale table; the voices are multilingual.
func (p *OpenAIProvider) Languages() []LanguageDescriptor {
	return Languages()
}

// Synthesize synthesizes req and writes the complete audio to path.
func (p *OpenAIProvider) Synthesize(ctx context.Context, req *Request, path string) error {
	audio, err := p.synthesize(ctx, req)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return synthesisError(p.id, err)
	}
	return nil
}

// Stream synthesizes req and returns the audio as a reader.
func (p *OpenAIProvider) Stream(ctx context.Context, req *Request) (io.ReadCloser, error) {
	audio, err := p.synthesize(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(audio) == 0 {
		return nil, nil
	}
	return io.NopCloser(bytes.NewReader(audio)), nil
}

func (p *OpenAIProvider) synthesize(ctx context.Context, req *Request) ([]byte, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, &SynthesisError{Provider: p.id, Err: fmt.Errorf("empty text")}
	}
	if _, ok := p.byID[req.VoiceID]; !ok {
		return nil, &SynthesisError{
			Provider: p.id,
			Err:      fmt.Errorf("%w: %q", ErrUnknownVoice, req.VoiceID),
		}
	}

	params := openai.AudioSpeechNewParams{
		Model:          p.model,
		Input:          req.Text,
		Voice:          openai.AudioSpeechNewParamsVoice(req.VoiceID),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	}
	if speed, ok := rateToSpeed(req.Rate); ok {
		params.Speed = openai.Float(speed)
	}

	resp, err := p.client.Audio.Speech.New(ctx, params)
	if err != nil {
		return nil, synthesisError(p.id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &SynthesisError{
			Provider: p.id,
			Err:      fmt.Errorf("speech endpoint returned %s: %s", resp.Status, body),
		}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, synthesisError(p.id, err)
	}
	return audio, nil
}

// rateToSpeed maps a percentage rate adjustment like "+10%" or "-25%"
// onto the endpoint's speed multiplier. Volume and pitch adjustments
// have no equivalent and are ignored.
func rateToSpeed(rate string) (float64, bool) {
	if rate == "" || rate == "+0%" {
		return 0, false
	}
	pct, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimPrefix(rate, "+"), "%"), 64)
	if err != nil {
		return 0, false
	}
	speed := 1 + pct/100
	// Endpoint accepts 0.25 to 4.0.
	speed = max(0.25, min(speed, 4.0))
	return speed, true
}
