package main

import (
	"os"

	"taskledger/internal/cli"
)

// Replays the four add calls of the original program against the store
// configured by TASKLEDGER_CONFIG (defaults when unset).
func main() {
	args := []string{"demo"}
	if path := os.Getenv("TASKLEDGER_CONFIG"); path != "" {
		args = append([]string{"-config", path}, args...)
	}
	os.Exit(cli.Run(args, os.Stdout, os.Stderr))
}
