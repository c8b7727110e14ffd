package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/oneconcern/datatool/pkg/datatool"
	"github.com/oneconcern/datatool/pkg/model"
)

type fileDescriptor struct {
	ID        string                 `yaml:"id"`
	Tags      []string               `yaml:"tags,omitempty"`
	Attrs     map[string]interface{} `yaml:"attrs,omitempty"`
	Instances []model.FileInstance   `yaml:"instances,omitempty"`
}

type datasetDescriptor struct {
	ID    string                 `yaml:"id"`
	Name  string                 `yaml:"name,omitempty"`
	Tags  []string               `yaml:"tags,omitempty"`
	Attrs map[string]interface{} `yaml:"attrs,omitempty"`
	Files []fileDescriptor       `yaml:"files,omitempty"`
}

func describe(d *model.Dataset) datasetDescriptor {
	desc := datasetDescriptor{
		ID:    d.ID,
		Name:  d.Name(),
		Tags:  d.Tags.Sorted(),
		Attrs: otherAttrs(d.Attrs),
	}
	for _, f := range d.Files {
		desc.Files = append(desc.Files, fileDescriptor{
			ID:        f.ID,
			Tags:      f.Tags.Sorted(),
			Attrs:     otherAttrs(f.Attrs),
			Instances: f.Instances,
		})
	}
	return desc
}

// otherAttrs are the properties other than the name
func otherAttrs(attrs model.Attrs) map[string]interface{} {
	res := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		if k == model.NameAttr {
			continue
		}
		res[k] = v
	}
	return res
}

var setShow = &cobra.Command{
	Use:   "show <name-or-id>",
	Short: "Describe a dataset",
	Long:  "Describe a dataset as YAML, with its files and all their known instances.",
	Args:  cobra.ExactArgs(1),
	Run: withTool("show dataset", func(cmd *cobra.Command, tool *datatool.Tool, args []string) error {
		d, err := tool.Dataset(args[0])
		if err != nil {
			return err
		}
		b, err := yaml.Marshal(describe(d.Dataset))
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	}),
}

func init() {
	setCmd.AddCommand(setShow)
}
