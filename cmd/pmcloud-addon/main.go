package main

import (
	"os"

	"github.com/xybydy/pmcloud-addon/cmd/pmcloud-addon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
