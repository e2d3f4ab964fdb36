package main

import (
	"os"

	"github.com/fortuna/gridiron/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
