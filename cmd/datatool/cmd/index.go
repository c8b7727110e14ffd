package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/oneconcern/datatool/pkg/datatool"
	"github.com/oneconcern/datatool/pkg/dlogger"
)

var indexCmd = &cobra.Command{
	Use:   "index <file>...",
	Short: "Add files to the index",
	Long: `Add files to the index.

Files already indexed are hashed again only when their size or modification time changed.`,
	Args: cobra.MinimumNArgs(1),
	Run: withTool("index files", func(cmd *cobra.Command, tool *datatool.Tool, args []string) error {
		logger := dlogger.MustGetLogger(viper.GetString(logLevelKey))
		for _, file := range args {
			logger.Info("indexing", zap.String("file", file))
			if _, err := tool.IndexFiles([]string{file}); err != nil {
				return err
			}
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
