package main

import (
	"log/slog"
	"os"

	"github.com/metinatakli/movie-catalog/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		slog.Error("application stopped", "error", err)
		os.Exit(1)
	}
}
