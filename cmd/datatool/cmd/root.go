package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oneconcern/datatool/internal"
	"github.com/oneconcern/datatool/pkg/dlogger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "datatool",
	Short: "datatool keeps track of datasets and where their files live",
	Long: `datatool keeps track of datasets and where their files live.

Files are identified by their content, not by their location: the same
content found at several places is a single file with several instances.

Datasets, their files and their tags are recorded in an append-only log,
the data authority. Observations of files on disk are recorded in another
log, the data index.
`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if datatoolFlags.root.cpuProf == "" {
			return
		}
		stop, err := internal.CPUProfile(datatoolFlags.root.cpuProf, dlogger.MustGetLogger(viper.GetString(logLevelKey)))
		if err != nil {
			wrapFatalln("start cpu profiling", err)
			return
		}
		stopProfiling = stop
	},
	// upstream api note:  *PostRun functions aren't called in case of a panic() in Run
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if stopProfiling != nil {
			stopProfiling()
			stopProfiling = nil
		}
	},
}

var stopProfiling func()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	addAuthorityFlag(rootCmd)
	addIndexFlag(rootCmd)
	addLogLevelFlag(rootCmd)
	addCPUProfFlag(rootCmd)
	bindConfig(rootCmd.PersistentFlags())
}
