// Copyright (c) 2023 BVK Chaitanya

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/bvk/backtest/subcmds/db"
	"github.com/bvk/backtest/subcmds/defaults"
	"github.com/bvk/backtest/subcmds/offline"
	"github.com/bvk/backtest/subcmds/store"
	"github.com/visvasity/cli"
	"github.com/visvasity/sglog"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	if dir := defaults.LogDir(); len(dir) != 0 {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("could not create log directory %q: %w", dir, err)
		}
		backend := sglog.NewBackend(&sglog.Options{
			LogDirs:       []string{dir},
			LogFileHeader: true,
		})
		defer backend.Close()

		// Structured events go into the log files; operator status lines
		// printed with the log package stay on the stderr.
		slog.SetDefault(slog.New(backend.Handler()))
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
	}

	storeCmds := []cli.Command{
		new(store.Save),
		new(store.Load),
	}

	dbCmds := []cli.Command{
		new(db.Put),
		new(db.Get),
		new(db.List),
		new(db.Delete),
		new(db.Backup),
		new(db.Restore),
	}

	offlineCmds := []cli.Command{
		new(offline.Snapshot),
		new(offline.Products),
		new(offline.Candles),
	}

	cmds := []cli.Command{
		cli.NewGroup("store", "Save/load values in files", storeCmds...),
		cli.NewGroup("db", "Save/load named values in the database", dbCmds...),
		cli.NewGroup("offline", "Manage offline exchange snapshots", offlineCmds...),
	}
	return cli.Run(context.Background(), cmds, args)
}
