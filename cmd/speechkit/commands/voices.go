package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vocalizr/speechkit/pkg/cli"
	"github.com/vocalizr/speechkit/pkg/readaloud"
	"github.com/vocalizr/speechkit/pkg/synth"
)

var (
	voicesProvider string
	voicesLanguage string
	voicesLive     bool
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List available voices",
	Long: `List the voices of the current synthesis provider.

Examples:
  speechkit voices
  speechkit voices --language en-US
  speechkit voices --provider openai-speech --format yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if voicesLive {
			return listLiveVoices(cmd)
		}

		reg, err := newRegistry()
		if err != nil {
			return err
		}

		voices, err := providerVoices(reg, voicesProvider)
		if err != nil {
			return err
		}

		if voicesLanguage != "" {
			var filtered []synth.VoiceDescriptor
			for _, v := range voices {
				if strings.EqualFold(v.LanguageRegion, voicesLanguage) {
					filtered = append(filtered, v)
				}
			}
			voices = filtered
		}

		if cli.OutputFormat(outputFormat) != cli.FormatTable {
			return cli.Output(voices, cli.OutputOptions{Format: cli.OutputFormat(outputFormat)})
		}

		rows := make([][]string, 0, len(voices))
		for _, v := range voices {
			rows = append(rows, []string{v.ID, v.DisplayName, v.Gender, v.LanguageRegion, v.Category})
		}
		table := cli.RenderTable(cli.NewTableStyles(cli.DefaultTheme),
			[]string{"ID", "NAME", "GENDER", "LANGUAGE", "CATEGORY"}, rows)
		cmd.Print(table)
		return nil
	},
}

// providerVoices returns the voices of the named provider, or the current
// provider when name is empty.
func providerVoices(reg *synth.Registry, name string) ([]synth.VoiceDescriptor, error) {
	if name == "" {
		return reg.Voices(), nil
	}
	p, ok := reg.Provider(name)
	if !ok {
		return nil, fmt.Errorf("provider %q: %w", name, synth.ErrUnknownProvider)
	}
	return p.Voices(), nil
}

// listLiveVoices fetches the readaloud backend's current voice list,
// bypassing the bundled catalog.
func listLiveVoices(cmd *cobra.Command) error {
	client := readaloud.NewClient()
	voices, err := client.ListVoices(cmd.Context())
	if err != nil {
		return err
	}

	if voicesLanguage != "" {
		var filtered []readaloud.Voice
		for _, v := range voices {
			if strings.EqualFold(v.Locale, voicesLanguage) {
				filtered = append(filtered, v)
			}
		}
		voices = filtered
	}

	if cli.OutputFormat(outputFormat) != cli.FormatTable {
		return cli.Output(voices, cli.OutputOptions{Format: cli.OutputFormat(outputFormat)})
	}

	rows := make([][]string, 0, len(voices))
	for _, v := range voices {
		rows = append(rows, []string{v.ShortName, v.Gender, v.Locale, v.Status})
	}
	table := cli.RenderTable(cli.NewTableStyles(cli.DefaultTheme),
		[]string{"ID", "GENDER", "LOCALE", "STATUS"}, rows)
	cmd.Print(table)
	return nil
}

func init() {
	voicesCmd.Flags().StringVarP(&voicesProvider, "provider", "p", "", "provider id (default: current provider)")
	voicesCmd.Flags().StringVarP(&voicesLanguage, "language", "l", "", "filter by language region, e.g. en-US")
	voicesCmd.Flags().BoolVar(&voicesLive, "live", false, "fetch the live voice list from the readaloud backend")
	rootCmd.AddCommand(voicesCmd)
}
