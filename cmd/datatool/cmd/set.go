package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oneconcern/datatool/pkg/datatool"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Create and manipulate datasets",
	Long:  "Create datasets, add or remove files, rename or delete datasets.",
}

var setCreate = &cobra.Command{
	Use:   "create [<file>...]",
	Short: "Create a dataset, optionally named, with some files",
	Long: `Create a dataset, optionally named, with some files.

The files are indexed first. The id of the new dataset is printed.`,
	Example: `% datatool set create --name calibration /data/calib/*.csv
3f9ac2e1d54b4f7c9a1e0b6f2d8c7a51`,
	Run: withTool("create dataset", func(cmd *cobra.Command, tool *datatool.Tool, args []string) error {
		id, err := tool.Authority().CreateSet(datatoolFlags.set.name)
		if err != nil {
			return err
		}
		if len(args) > 0 {
			if err = tool.AddFiles(id, args); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	}),
}

var setAddFiles = &cobra.Command{
	Use:   "addfiles <name-or-id> <file>...",
	Short: "Add files to a dataset",
	Args:  cobra.MinimumNArgs(2),
	Run: withTool("add files", func(cmd *cobra.Command, tool *datatool.Tool, args []string) error {
		d, err := tool.Dataset(args[0])
		if err != nil {
			return err
		}
		return tool.AddFiles(d.ID, args[1:])
	}),
}

var setRemoveFiles = &cobra.Command{
	Use:   "rmfiles <name-or-id> <file-or-hash>...",
	Short: "Remove files from a dataset",
	Long: `Remove files from a dataset.

Files are designated by their path, or by a prefix of their content hash.`,
	Args: cobra.MinimumNArgs(2),
	Run: withTool("remove files", func(cmd *cobra.Command, tool *datatool.Tool, args []string) error {
		d, err := tool.Dataset(args[0])
		if err != nil {
			return err
		}
		return tool.RemoveFiles(d.ID, args[1:])
	}),
}

var setDelete = &cobra.Command{
	Use:   "delete <name-or-id>",
	Short: "Delete a dataset",
	Long:  "Delete a dataset. Its files remain known.",
	Args:  cobra.ExactArgs(1),
	Run: withTool("delete dataset", func(cmd *cobra.Command, tool *datatool.Tool, args []string) error {
		d, err := tool.Dataset(args[0])
		if err != nil {
			return err
		}
		return tool.Authority().DeleteSet(d.ID)
	}),
}

var setRename = &cobra.Command{
	Use:   "rename <name-or-id> <name>",
	Short: "Name, or rename, a dataset",
	Args:  cobra.ExactArgs(2),
	Run: withTool("rename dataset", func(cmd *cobra.Command, tool *datatool.Tool, args []string) error {
		d, err := tool.Dataset(args[0])
		if err != nil {
			return err
		}
		return tool.Authority().RenameSet(d.ID, args[1])
	}),
}

func init() {
	addNameFlag(setCreate)

	setCmd.AddCommand(setCreate, setAddFiles, setRemoveFiles, setDelete, setRename)
	rootCmd.AddCommand(setCmd)
}
