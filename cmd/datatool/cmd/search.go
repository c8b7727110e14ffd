package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/oneconcern/datatool/pkg/datatool"
	"github.com/oneconcern/datatool/pkg/dlogger"
	"github.com/oneconcern/datatool/pkg/model"
)

var searchCmd = &cobra.Command{
	Use:   "search <tag>...",
	Short: "Find the datasets carrying some tags",
	Args:  cobra.MinimumNArgs(1),
	Run: withTool("search", func(cmd *cobra.Command, tool *datatool.Tool, args []string) error {
		sets := tool.Authority().Search(args)
		dlogger.MustGetLogger(viper.GetString(logLevelKey)).Info("search", zap.Int("results", len(sets)))
		printSets(cmd.OutOrStdout(), sets)
		return nil
	}),
}

var identifyCmd = &cobra.Command{
	Use:   "identify <file>...",
	Short: "Find the datasets containing some files",
	Long: `Find the datasets containing some files.

Files are designated by their path, or by a prefix of their content hash.
Files on disk which were never indexed are indexed first.`,
	Args: cobra.MinimumNArgs(1),
	Run: withTool("identify", func(cmd *cobra.Command, tool *datatool.Tool, args []string) error {
		var sets []*model.Dataset
		seen := make(map[string]struct{})
		for _, file := range args {
			found, err := tool.Identify(file)
			if err != nil {
				return err
			}
			for _, d := range found {
				if _, ok := seen[d.ID]; ok {
					continue
				}
				seen[d.ID] = struct{}{}
				sets = append(sets, d)
			}
		}
		printSets(cmd.OutOrStdout(), sets)
		return nil
	}),
}

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List datasets",
	Long:  "List the datasets holding files, or all of them with --all.",
	Args:  cobra.NoArgs,
	Run: withTool("list datasets", func(cmd *cobra.Command, tool *datatool.Tool, args []string) error {
		var sets []*model.Dataset
		for _, d := range tool.Authority().Datasets() {
			if len(d.Files) > 0 || datatoolFlags.sets.all {
				sets = append(sets, d)
			}
		}
		printSets(cmd.OutOrStdout(), sets)
		return nil
	}),
}

func init() {
	addAllFlag(setsCmd)
	rootCmd.AddCommand(searchCmd, identifyCmd, setsCmd)
}
