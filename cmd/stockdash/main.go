// Command stockdash serves the stock dashboard API.
//
// Usage:
//
//	stockdash serve [--config config.yaml]
//	stockdash migrate up|down
package main

import (
	"os"

	"github.com/trogers1052/stock-dashboard/cmd/stockdash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
