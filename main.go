package main

import (
	"os"

	"github.com/gearvrf/gvrf-exporter/cmd/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
