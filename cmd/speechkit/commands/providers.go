package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vocalizr/speechkit/pkg/cli"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List and switch synthesis providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}

		type providerInfo struct {
			ID      string `json:"id" yaml:"id"`
			Current bool   `json:"current" yaml:"current"`
			Voices  int    `json:"voices" yaml:"voices"`
		}

		var infos []providerInfo
		for _, id := range reg.ProviderIDs() {
			p, _ := reg.Provider(id)
			infos = append(infos, providerInfo{
				ID:      id,
				Current: id == reg.CurrentID(),
				Voices:  len(p.Voices()),
			})
		}

		if cli.OutputFormat(outputFormat) != cli.FormatTable {
			return cli.Output(infos, cli.OutputOptions{Format: cli.OutputFormat(outputFormat)})
		}

		rows := make([][]string, 0, len(infos))
		for _, info := range infos {
			marker := " "
			if info.Current {
				marker = "*"
			}
			rows = append(rows, []string{marker, info.ID, fmt.Sprintf("%d", info.Voices)})
		}
		table := cli.RenderTable(cli.NewTableStyles(cli.DefaultTheme),
			[]string{"", "ID", "VOICES"}, rows)
		cmd.Print(table)
		return nil
	},
}

var providersUseCmd = &cobra.Command{
	Use:   "use <provider-id>",
	Short: "Set the default synthesis provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}

		// Validate against the registry that these settings would build.
		reg, err := buildRegistry(cfg.Settings)
		if err != nil {
			return err
		}
		if err := reg.Switch(args[0]); err != nil {
			return err
		}

		cfg.Settings.Provider = args[0]
		if err := cfg.Save(); err != nil {
			return err
		}
		cli.PrintSuccess("default provider set to %s", args[0])
		return nil
	},
}

func init() {
	providersCmd.AddCommand(providersUseCmd)
	rootCmd.AddCommand(providersCmd)
}
