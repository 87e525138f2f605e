package main

import (
	"embed"
	"log/slog"
	"os"

	"github.com/ghuser/cheeseshop/pkg/config"
	"github.com/ghuser/cheeseshop/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	command := migrator.CmdUp
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	if err := migrator.RunMigrations(cfg.DatabaseURL, MigrationsFS, command); err != nil {
		slog.Error("migrations failed", "command", command, "error", err)
		os.Exit(1)
	}
	slog.Info("migrations done", "command", command)
}
