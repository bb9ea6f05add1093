package synth

import (
	"context"
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrCatalogLoad is returned when the bundled voice data is missing
	// or malformed. The catalog is never partially populated.
	ErrCatalogLoad = errors.New("synth: catalog load failed")

	// ErrUnknownProvider is returned when switching to an unregistered
	// provider id.
	ErrUnknownProvider = errors.New("synth: unknown provider")

	// ErrDuplicateProvider is returned at registry construction when two
	// providers share an id.
	ErrDuplicateProvider = errors.New("synth: duplicate provider id")

	// ErrNoProviders is returned when a registry is constructed without
	// providers.
	ErrNoProviders = errors.New("synth: no providers registered")

	// ErrUnknownVoice is returned when a request names a voice id the
	// provider's catalog does not contain.
	ErrUnknownVoice = errors.New("synth: unknown voice")
)

// SynthesisError wraps an underlying protocol or transport failure for
// provider-layer callers. No partial audio accompanies it.
type SynthesisError struct {
	// Provider is the id of the provider that failed.
	Provider string

	// Err is the underlying failure.
	Err error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synth: %s synthesis failed: %v", e.Provider, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// synthesisError wraps err unless it is a cancellation, which is
// surfaced as-is so callers can distinguish it from backend failures.
func synthesisError(provider string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &SynthesisError{Provider: provider, Err: err}
}
