package main

import (
	"os"

	"github.com/tapemark/tapemark/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
