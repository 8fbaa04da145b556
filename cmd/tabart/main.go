package main

import (
	"os"

	"github.com/bjaus/tabart/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
