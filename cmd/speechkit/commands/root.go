package commands

import (
	"fmt"

	"github.com/openai/openai-go"
	"github.com/spf13/cobra"

	"github.com/vocalizr/speechkit/cmd/speechkit/internal/config"
	"github.com/vocalizr/speechkit/pkg/readaloud"
	"github.com/vocalizr/speechkit/pkg/synth"
)

var (
	// Global flags
	verbose      bool
	outputFormat string

	// Global configuration (loaded at init time)
	globalConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "speechkit",
	Short: "Text-to-speech synthesis CLI",
	Long: `speechkit - synthesize speech from text on the command line.

Synthesis providers:
  edge-readaloud  Edge read-aloud WebSocket backend (default, no credentials)
  openai-speech   OpenAI /audio/speech backend (needs openai.api_key)

Settings are stored in the OS config directory:
  macOS:   ~/Library/Application Support/speechkit/settings.yaml
  Linux:   ~/.config/speechkit/settings.yaml
  Windows: %AppData%/speechkit/settings.yaml

Examples:
  # Synthesize a sentence with the default voice
  speechkit say -o hello.mp3 "Hello, world"

  # Pick a voice and tweak prosody
  speechkit say --voice zh-CN-XiaoxiaoNeural --rate +10% -o out.mp3 "你好"

  # Explore the catalog
  speechkit voices --language en-US
  speechkit languages

  # Switch the default provider
  speechkit providers use openai-speech`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "output format (table, yaml, json)")
}

// configLoadErr stores the error from config.Load() for deferred reporting.
var configLoadErr error

func initConfig() {
	cfg, err := config.Load()
	if err != nil {
		// Store error for deferred reporting — commands that need config
		// will get a clear error via GetConfig(). This avoids failing
		// commands like 'speechkit version'.
		configLoadErr = err
		return
	}
	globalConfig = cfg
}

// GetConfig returns the global configuration.
// Returns an error if the config could not be loaded (e.g., HOME not set).
func GetConfig() (*config.Config, error) {
	if globalConfig == nil {
		if configLoadErr != nil {
			return nil, fmt.Errorf("config not available: %w", configLoadErr)
		}
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("config not available: %w", err)
		}
		globalConfig = cfg
	}
	return globalConfig, nil
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}

// buildRegistry constructs the provider registry from the current settings.
// The readaloud provider is always registered; the OpenAI provider joins
// when an API key is configured.
func buildRegistry(settings config.Settings) (*synth.Registry, error) {
	edge, err := synth.NewReadAloudProvider(readaloud.NewClient(), synth.NewCatalog())
	if err != nil {
		return nil, err
	}

	providers := []synth.Provider{edge}
	if settings.OpenAI.APIKey != "" {
		var opts []synth.OpenAIOption
		if settings.OpenAI.Model != "" {
			opts = append(opts, synth.WithOpenAIModel(openai.SpeechModel(settings.OpenAI.Model)))
		}
		if settings.OpenAI.BaseURL != "" {
			opts = append(opts, synth.WithOpenAIBaseURL(settings.OpenAI.BaseURL))
		}
		providers = append(providers, synth.NewOpenAIProvider(settings.OpenAI.APIKey, opts...))
	}

	reg, err := synth.NewRegistry(providers...)
	if err != nil {
		return nil, err
	}

	if settings.Provider != "" {
		if err := reg.Switch(settings.Provider); err != nil {
			return nil, fmt.Errorf("default provider: %w", err)
		}
	}
	return reg, nil
}

// newRegistry loads the config and builds the registry in one step.
func newRegistry() (*synth.Registry, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return buildRegistry(cfg.Settings)
}
