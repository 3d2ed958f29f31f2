package main

import (
	"os"

	"github.com/avicweb/avicbot/internal/cli"
	"github.com/avicweb/avicbot/internal/metrics"
)

func main() {
	metrics.EmitBuildInfo()
	os.Exit(cli.Execute())
}
