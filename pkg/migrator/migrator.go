// Package migrator applies the embedded goose migrations of a service.
package migrator

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Commands understood by Run.
const (
	CmdUp      = "up"
	CmdDown    = "down"
	CmdStatus  = "status"
	CmdVersion = "version"
)

// RunMigrations opens dbURL with the pgx driver and runs command.
func RunMigrations(dbURL string, files fs.FS, command string) error {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	return Run(db, files, command)
}

// Run executes a goose command against db. An empty command means up.
func Run(db *sql.DB, files fs.FS, command string) error {
	goose.SetBaseFS(files)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	switch command {
	case "", CmdUp:
		return wrap(CmdUp, goose.Up(db, "."))
	case CmdDown:
		return wrap(CmdDown, goose.Down(db, "."))
	case CmdStatus:
		return wrap(CmdStatus, goose.Status(db, "."))
	case CmdVersion:
		v, err := goose.GetDBVersion(db)
		if err != nil {
			return wrap(CmdVersion, err)
		}
		slog.Info("schema version", "version", v)
		return nil
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
}

func wrap(command string, err error) error {
	if err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}
