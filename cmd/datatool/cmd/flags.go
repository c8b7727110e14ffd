package cmd

import (
	"github.com/spf13/cobra"
)

type flagsT struct {
	root struct {
		authority string
		index     string
		logLevel  string
		cpuProf   string
	}
	set struct {
		name string
	}
	tag struct {
		tags   []string
		delete bool
	}
	files struct {
		wildcard bool
		oneLine  bool
	}
	sets struct {
		all bool
	}
}

var datatoolFlags = flagsT{}

func addAuthorityFlag(cmd *cobra.Command) string {
	authority := authorityKey
	cmd.PersistentFlags().StringVar(&datatoolFlags.root.authority, authority, "",
		"The data authority to use. Defaults to $DATA_AUTHORITY, then ~/.data.authority")
	return authority
}

func addIndexFlag(cmd *cobra.Command) string {
	index := indexKey
	cmd.PersistentFlags().StringVar(&datatoolFlags.root.index, index, "",
		"The data index to use. Defaults to $DATA_INDEX, then ~/.data.index")
	return index
}

func addLogLevelFlag(cmd *cobra.Command) string {
	logLevel := logLevelKey
	cmd.PersistentFlags().StringVar(&datatoolFlags.root.logLevel, logLevel, "info",
		"The logging level: debug, info, warn, error or none")
	return logLevel
}

func addCPUProfFlag(cmd *cobra.Command) string {
	cpuProf := "cpuprof"
	cmd.PersistentFlags().StringVar(&datatoolFlags.root.cpuProf, cpuProf, "", "Write a CPU profile to this file")
	return cpuProf
}

func addNameFlag(cmd *cobra.Command) string {
	name := "name"
	cmd.Flags().StringVar(&datatoolFlags.set.name, name, "", "Give a name to the dataset")
	return name
}

func addTagFlag(cmd *cobra.Command) string {
	tag := "tag"
	cmd.Flags().StringSliceVarP(&datatoolFlags.tag.tags, tag, "t", nil,
		"Tags to apply. When given, all arguments designate what is tagged")
	return tag
}

func addDeleteFlag(cmd *cobra.Command) string {
	del := "delete"
	cmd.Flags().BoolVarP(&datatoolFlags.tag.delete, del, "d", false, "Remove the tags instead of adding them")
	return del
}

func addWildcardFlag(cmd *cobra.Command) string {
	wildcard := "wildcard"
	cmd.Flags().BoolVarP(&datatoolFlags.files.wildcard, wildcard, "w", false, "Output file names as wildcards, when possible")
	return wildcard
}

func addOneLineFlag(cmd *cobra.Command) string {
	oneLine := "one"
	cmd.Flags().BoolVarP(&datatoolFlags.files.oneLine, oneLine, "1", false, "Output only one file name per line. For parsing.")
	return oneLine
}

func addAllFlag(cmd *cobra.Command) string {
	all := "all"
	cmd.Flags().BoolVarP(&datatoolFlags.sets.all, all, "a", false, "Show all datasets, even empty ones")
	return all
}
