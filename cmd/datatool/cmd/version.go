package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// set at link time, e.g. -ldflags "-X github.com/oneconcern/datatool/cmd/datatool/cmd.Version=v1.2.0"
var (
	Version   string
	BuildDate string
	GitCommit string
)

// buildInfo describes the running binary.
//
// Values set at link time win over those recorded by the go toolchain.
type buildInfo struct {
	version, date, commit string
	dirty                 bool
}

func readBuildInfo() buildInfo {
	info := buildInfo{version: "dev"}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.version = v
		}
		for _, setting := range bi.Settings {
			switch setting.Key {
			case "vcs.revision":
				info.commit = setting.Value
			case "vcs.time":
				info.date = setting.Value
			case "vcs.modified":
				info.dirty = setting.Value == "true"
			}
		}
	}
	if Version != "" {
		info.version = Version
	}
	if BuildDate != "" {
		info.date = BuildDate
	}
	if GitCommit != "" {
		info.commit = GitCommit
	}
	return info
}

func (b buildInfo) String() string {
	commit := b.commit
	if commit != "" && b.dirty {
		commit += " (dirty)"
	}
	return fmt.Sprintf("Version: %s\nBuild date: %s\nCommit: %s\n", b.version, b.date, commit)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of datatool",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), readBuildInfo())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
