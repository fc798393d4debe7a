package main

import (
	"os"

	"logisticshub/internal/cli"
	intconfig "logisticshub/internal/config"
)

func main() {
	if err := cli.Execute(); err != nil {
		intconfig.GetLogger().WithError(err).Error("command failed")
		os.Exit(1)
	}
}
