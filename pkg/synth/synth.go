// Package synth provides a provider-agnostic speech-synthesis layer:
// a bundled voice catalog, generic voice/language descriptors, and a
// registry that multiplexes several synthesis backends behind one
// contract.
//
// Application code should depend on [Registry] only; provider and
// protocol types never leak past it.
package synth

import (
	"context"
	"io"
)

// VoiceDescriptor is the provider-agnostic representation of a
// selectable synthesis voice. Descriptors are built once at catalog
// load and must not be mutated by consumers.
type VoiceDescriptor struct {
	// ID is the backend-specific voice name, unique within a provider.
	ID string `json:"id" yaml:"id"`

	// DisplayName is the human role name, e.g. "Aria".
	DisplayName string `json:"display_name" yaml:"display_name"`

	// Gender is the voice gender as reported by the backend.
	Gender string `json:"gender" yaml:"gender"`

	// LanguageRegion is the language-region pair, e.g. "en-US".
	LanguageRegion string `json:"language_region" yaml:"language_region"`

	// Category is an optional content-category tag, e.g. "News".
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// LanguageDescriptor describes one entry of the fixed locale table.
// The table may contain locales with no associated voices.
type LanguageDescriptor struct {
	// Code is the locale code, e.g. "en-US". Unique in the table.
	Code string `json:"code" yaml:"code"`

	// Name is the human language name.
	Name string `json:"name" yaml:"name"`

	// Flag is an optional icon reference for UI layers.
	Flag string `json:"flag,omitempty" yaml:"flag,omitempty"`
}

// Request describes one synthesis request. Rate, Volume and Pitch are
// provider-defined adjustment strings; empty means no adjustment.
type Request struct {
	Text    string `json:"text" yaml:"text"`
	VoiceID string `json:"voice_id" yaml:"voice_id"`
	Rate    string `json:"rate,omitempty" yaml:"rate,omitempty"`
	Volume  string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Pitch   string `json:"pitch,omitempty" yaml:"pitch,omitempty"`
}

// Provider is one synthesis backend bound behind the generic contract.
//
// Implementations must support concurrent Synthesize/Stream calls; each
// call owns its own session and connection.
type Provider interface {
	// ID returns the stable provider identity.
	ID() string

	// Voices returns the descriptors of this backend's voices.
	Voices() []VoiceDescriptor

	// Languages returns the subset of the locale table this backend
	// supports.
	Languages() []LanguageDescriptor

	// Synthesize runs one session and writes the complete audio to
	// path. Failures are reported as *SynthesisError.
	Synthesize(ctx context.Context, req *Request, path string) error

	// Stream runs one session and returns the complete audio as a
	// reader positioned at offset zero. It returns (nil, nil) only when
	// the backend legitimately produced zero audio.
	Stream(ctx context.Context, req *Request) (io.ReadCloser, error)
}
