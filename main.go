package main

import (
	"os"

	"github.com/nilsimda/topturnier/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
