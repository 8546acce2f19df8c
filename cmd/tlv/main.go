package main

import (
	"os"

	"github.com/bnema/timeline-viewer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
