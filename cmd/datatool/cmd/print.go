package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/oneconcern/datatool/pkg/model"
	"github.com/oneconcern/datatool/pkg/query"
)

func tagText(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "Tags: " + strings.Join(tags, ", ")
}

func printSets(w io.Writer, sets []*model.Dataset) {
	if len(sets) == 0 {
		fmt.Fprintln(w, "(no sets)")
		return
	}
	table := uitable.New()
	for _, d := range sets {
		readable := ""
		if !query.CanRead(appFs, d) {
			readable = color.RedString("(no read)")
		}
		table.AddRow(d.ID, d.Name(), readable, fmt.Sprintf("%d files", len(d.Files)), tagText(d.Tags.Sorted()))
	}
	fmt.Fprintln(w, table)
}
