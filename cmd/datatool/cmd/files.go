package cmd

import (
	"fmt"
	"strings"

	units "github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/oneconcern/datatool/pkg/datatool"
	"github.com/oneconcern/datatool/pkg/query"
)

var filesCmd = &cobra.Command{
	Use:   "files <name-or-id> [<tag>...]",
	Short: "List the files of a dataset",
	Long: `List the files of a dataset, optionally only those carrying all the given tags.

Each file is listed at its newest location found on disk. Files which
cannot be found are marked "(no read)", files never indexed "(no meta)".`,
	Example: `% datatool files calibration raw
/data/calib/run_01.csv            4.1kB  Tags: raw
/data/calib/run_02.csv            4.3kB  Tags: raw
% datatool files --wildcard calibration
/data/calib/run_0*.csv`,
	Args: cobra.MinimumNArgs(1),
	Run: withTool("list files", func(cmd *cobra.Command, tool *datatool.Tool, args []string) error {
		d, err := tool.Dataset(args[0])
		if err != nil {
			return err
		}
		entries := query.Locate(appFs, d.Files().ByTags(args[1:]...))
		if len(entries) == 0 {
			return nil
		}
		out := cmd.OutOrStdout()

		switch {
		case datatoolFlags.files.wildcard:
			names := make([]string, 0, len(entries))
			for _, entry := range entries {
				names = append(names, entry.Name)
			}
			compacted, err := tool.Compact(names)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, strings.Join(compacted, "\n"))
		case datatoolFlags.files.oneLine:
			for _, entry := range entries {
				fmt.Fprintln(out, entry.Name)
			}
		default:
			table := uitable.New()
			for _, entry := range entries {
				size := ""
				if latest, ok := entry.File.Latest(); ok {
					size = units.HumanSize(float64(latest.Size))
				}
				table.AddRow(entry.Name, availabilityText(entry.Availability), size, tagText(entry.File.Tags.Sorted()))
			}
			fmt.Fprintln(out, table)
		}
		return nil
	}),
}

func init() {
	addWildcardFlag(filesCmd)
	addOneLineFlag(filesCmd)
	rootCmd.AddCommand(filesCmd)
}

func availabilityText(a query.Availability) string {
	if a == query.Readable {
		return ""
	}
	return color.RedString(a.String())
}
