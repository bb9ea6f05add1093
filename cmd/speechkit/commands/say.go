package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vocalizr/speechkit/pkg/cli"
	"github.com/vocalizr/speechkit/pkg/synth"
)

var (
	sayRequestFile string
	sayTextFile    string
	sayOutput      string
	sayProvider    string
	sayVoice       string
	sayRate        string
	sayVolume      string
	sayPitch       string
)

// sayRequest is the YAML/JSON request-file shape for say -f.
type sayRequest struct {
	Text   string `json:"text" yaml:"text"`
	Voice  string `json:"voice" yaml:"voice"`
	Rate   string `json:"rate,omitempty" yaml:"rate,omitempty"`
	Volume string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Pitch  string `json:"pitch,omitempty" yaml:"pitch,omitempty"`
}

var sayCmd = &cobra.Command{
	Use:   "say [text]",
	Short: "Synthesize text to an audio file",
	Long: `Synthesize text to speech and write the audio to a file.

Text comes from the argument, from --text-file (use "-" for stdin),
or from a YAML/JSON request file via -f.

Examples:
  speechkit say -o hello.mp3 "Hello, world"
  speechkit say --voice zh-CN-XiaoxiaoNeural --rate +10% -o out.mp3 "你好"
  speechkit say -f request.yaml -o out.mp3
  echo "read this" | speechkit say --text-file - -o out.mp3`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if sayOutput == "" {
			return fmt.Errorf("output file is required (use -o)")
		}

		cfg, err := GetConfig()
		if err != nil {
			return err
		}

		req, err := resolveSayRequest(args, cfg.Settings.Voice, cfg.Settings.Rate, cfg.Settings.Volume, cfg.Settings.Pitch)
		if err != nil {
			return err
		}

		reg, err := buildRegistry(cfg.Settings)
		if err != nil {
			return err
		}
		if sayProvider != "" {
			if err := reg.Switch(sayProvider); err != nil {
				return err
			}
		}

		cli.PrintVerbose(IsVerbose(), "provider=%s voice=%s", reg.CurrentID(), req.VoiceID)

		start := time.Now()
		if err := reg.Synthesize(cmd.Context(), req, sayOutput); err != nil {
			return err
		}

		info, err := os.Stat(sayOutput)
		if err != nil {
			return err
		}
		cli.PrintSuccess("wrote %s (%s in %s)", sayOutput,
			cli.FormatBytes(info.Size()), cli.FormatDuration(time.Since(start)))
		return nil
	},
}

// resolveSayRequest merges the request file, flags and configured defaults.
// Flags win over the request file; the file wins over settings.
func resolveSayRequest(args []string, defVoice, defRate, defVolume, defPitch string) (*synth.Request, error) {
	var req sayRequest

	if sayRequestFile != "" {
		if err := cli.LoadRequest(sayRequestFile, &req); err != nil {
			return nil, err
		}
	}

	switch {
	case len(args) == 1:
		req.Text = args[0]
	case sayTextFile != "":
		text, err := cli.ReadText(sayTextFile)
		if err != nil {
			return nil, err
		}
		req.Text = text
	}

	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("no text to synthesize (pass an argument, --text-file, or -f)")
	}

	pick := func(flag, file, def string) string {
		if flag != "" {
			return flag
		}
		if file != "" {
			return file
		}
		return def
	}

	return &synth.Request{
		Text:    req.Text,
		VoiceID: pick(sayVoice, req.Voice, defVoice),
		Rate:    pick(sayRate, req.Rate, defRate),
		Volume:  pick(sayVolume, req.Volume, defVolume),
		Pitch:   pick(sayPitch, req.Pitch, defPitch),
	}, nil
}

func init() {
	sayCmd.Flags().StringVarP(&sayRequestFile, "file", "f", "", "YAML/JSON request file")
	sayCmd.Flags().StringVar(&sayTextFile, "text-file", "", `plain text file ("-" for stdin)`)
	sayCmd.Flags().StringVarP(&sayOutput, "output", "o", "", "output audio file (required)")
	sayCmd.Flags().StringVarP(&sayProvider, "provider", "p", "", "provider id (default: current provider)")
	sayCmd.Flags().StringVar(&sayVoice, "voice", "", "voice id, e.g. en-US-AriaNeural")
	sayCmd.Flags().StringVar(&sayRate, "rate", "", "speaking rate adjustment, e.g. +10%")
	sayCmd.Flags().StringVar(&sayVolume, "volume", "", "volume adjustment, e.g. -20%")
	sayCmd.Flags().StringVar(&sayPitch, "pitch", "", "pitch adjustment, e.g. +5Hz")
	rootCmd.AddCommand(sayCmd)
}
