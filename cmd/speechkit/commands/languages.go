package commands

import (
	"github.com/spf13/cobra"

	"github.com/vocalizr/speechkit/pkg/cli"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}

		langs := reg.Languages()

		if cli.OutputFormat(outputFormat) != cli.FormatTable {
			return cli.Output(langs, cli.OutputOptions{Format: cli.OutputFormat(outputFormat)})
		}

		rows := make([][]string, 0, len(langs))
		for _, l := range langs {
			rows = append(rows, []string{l.Code, l.Flag + " " + l.Name})
		}
		table := cli.RenderTable(cli.NewTableStyles(cli.DefaultTheme),
			[]string{"CODE", "LANGUAGE"}, rows)
		cmd.Print(table)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
