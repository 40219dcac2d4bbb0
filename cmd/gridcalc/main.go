package main

import (
	"os"

	"github.com/dkovalenko-dev/gridcalc/cmd/gridcalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
