package main

import (
	"github.com/oneconcern/datatool/cmd/datatool/cmd"
)

func main() {
	cmd.Execute()
}
