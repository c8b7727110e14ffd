package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oneconcern/datatool/pkg/datatool"
)

var importCmd = &cobra.Command{
	Use:   "import <snapshot>",
	Short: "Import datasets from a deployment snapshot",
	Long: `Import datasets from a deployment snapshot.

A snapshot lists one file per line, as a content hash, a dataset name,
a file name and optional file tags. Datasets are created as needed.`,
	Args: cobra.ExactArgs(1),
	Run: withTool("import snapshot", func(cmd *cobra.Command, tool *datatool.Tool, args []string) error {
		snapshot, err := appFs.Open(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = snapshot.Close() }()
		return tool.Authority().LoadSnapshot(snapshot)
	}),
}

func init() {
	rootCmd.AddCommand(importCmd)
}
