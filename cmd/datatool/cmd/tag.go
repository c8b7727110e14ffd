package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oneconcern/datatool/pkg/datatool"
)

var tagCmd = &cobra.Command{
	Use:   "tag [-d] <name-or-id-or-file> <tag>... | tag [-d] --tag <tag>... <name-or-id-or-file>...",
	Short: "Tag datasets or files",
	Long: `Add tags to a dataset or a file, or remove them with --delete.

Without --tag, the first argument designates what is tagged and the others are tags.
With --tag, all arguments designate what is tagged.

Datasets are designated by name or by a prefix of their id. Files are
designated by their path, or by a prefix of their content hash.`,
	Example: `% datatool tag calibration raw 2014
% datatool tag -d -t raw calibration /data/calib/run_01.csv`,
	Args: cobra.MinimumNArgs(1),
	Run: withTool("tag", func(cmd *cobra.Command, tool *datatool.Tool, args []string) error {
		targets, tags := args[:1], args[1:]
		if len(datatoolFlags.tag.tags) > 0 {
			targets, tags = args, datatoolFlags.tag.tags
		}
		if len(tags) == 0 {
			return fmt.Errorf("no tags given")
		}
		for _, target := range targets {
			e, err := tool.Resolve(target)
			if err != nil {
				return err
			}
			if e == nil {
				return fmt.Errorf("could not find entry from criteria %q", target)
			}
			if datatoolFlags.tag.delete {
				err = tool.Authority().RemoveTags(e.EntityID(), tags)
			} else {
				err = tool.Authority().AddTags(e.EntityID(), tags)
			}
			if err != nil {
				return err
			}
		}
		return nil
	}),
}

func init() {
	addTagFlag(tagCmd)
	addDeleteFlag(tagCmd)
	rootCmd.AddCommand(tagCmd)
}
