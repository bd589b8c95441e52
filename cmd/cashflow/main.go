package main

import (
	"log/slog"
	"os"

	"cashflow/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
