package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oneconcern/datatool/pkg/datatool"
	"github.com/oneconcern/datatool/pkg/dlogger"
	"github.com/oneconcern/datatool/pkg/errors"
)

// used to patch over the file system during test
var appFs = afero.NewOsFs()

func openTool() (*datatool.Tool, error) {
	logger, err := dlogger.GetLogger(viper.GetString(logLevelKey))
	if err != nil {
		return nil, err
	}
	authorityPath, err := locateAuthority(appFs, viper.GetString(authorityKey))
	if err != nil {
		return nil, err
	}
	indexPath, err := locateIndex(appFs, viper.GetString(indexKey))
	if err != nil {
		return nil, err
	}
	return datatool.Open(appFs, authorityPath, indexPath, datatool.Logger(logger))
}

// withTool runs a command against the datasets, then saves whatever the command changed
func withTool(action string, fn func(*cobra.Command, *datatool.Tool, []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		tool, err := openTool()
		switch {
		case err == nil:
		case errors.Is(err, errNoAuthority), errors.Is(err, errNoIndex):
			wrapFatalWithCodef(2, "%v", err)
			return
		default:
			wrapFatalln("open datasets", err)
			return
		}

		if err = fn(cmd, tool, args); err != nil {
			wrapFatalln(action, err)
			return
		}
		if err = tool.Save(); err != nil {
			wrapFatalln("save datasets", err)
		}
	}
}
