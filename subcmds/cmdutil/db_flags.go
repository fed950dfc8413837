// Copyright (c) 2023 BVK Chaitanya

package cmdutil

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path"

	"github.com/bvk/backtest/kvutil"
	"github.com/bvk/backtest/subcmds/defaults"
	"github.com/bvkgo/kv"
	"github.com/bvkgo/kv/kvmemdb"
	"github.com/bvkgo/kvbadger"
	"github.com/dgraph-io/badger/v4"
)

type DBFlags struct {
	dataDir string

	fromBackup string

	backupBefore string
	backupAfter  string
}

func (f *DBFlags) SetFlags(fset *flag.FlagSet) {
	fset.StringVar(&f.dataDir, "data-dir", "", "Path to the database directory (default=$HOME/.backtest or BACKTEST_DATA_DIR value)")

	fset.StringVar(&f.fromBackup, "from-backup", "", "Path to a database backup file to use as an in-memory database")

	fset.StringVar(&f.backupBefore, "backup-before", "", "Path to a file to receive db backup before cmd is run")
	fset.StringVar(&f.backupAfter, "backup-after", "", "Path to a file to receive db backup after cmd is run")
}

// IsBackupDatabase returns true if the database is an in-memory copy of a
// backup file, in which case changes are lost when the command exits.
func (f *DBFlags) IsBackupDatabase() bool {
	return len(f.fromBackup) != 0
}

func (f *DBFlags) dbCloser(db kv.Database, closef func() error) func() {
	return func() {
		if len(f.backupAfter) != 0 {
			if err := kvutil.BackupDB(context.Background(), db, f.backupAfter); err != nil {
				log.Printf("could not take db backup after it is used (ignored): %v", err)
			}
		}
		if closef != nil {
			if err := closef(); err != nil {
				log.Printf("could not close the database (ignored): %v", err)
			}
		}
	}
}

// GetDatabase opens the database selected by the flags. Callers must invoke
// the returned closer function when done.
func (f *DBFlags) GetDatabase(ctx context.Context) (db kv.Database, closer func(), status error) {
	defer func() {
		if status == nil && len(f.backupBefore) != 0 {
			if err := kvutil.BackupDB(ctx, db, f.backupBefore); err != nil {
				log.Printf("could not take a db backup before it is used: %v", err)
				closer()
				db, closer, status = nil, nil, err
			}
		}
	}()

	isGoodKey := func(k string) bool {
		return path.IsAbs(k) && k == path.Clean(k)
	}

	if len(f.fromBackup) != 0 {
		mdb := kvmemdb.New()
		if err := kvutil.RestoreDB(ctx, mdb, f.fromBackup); err != nil {
			return nil, nil, fmt.Errorf("could not restore in-memory db from backup: %w", err)
		}
		return mdb, f.dbCloser(mdb, nil), nil
	}

	dataDir := f.dataDir
	if len(dataDir) == 0 {
		dataDir = defaults.DataDir()
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, nil, fmt.Errorf("could not create data directory %q: %w", dataDir, err)
	}
	bopts := badger.DefaultOptions(dataDir).WithLogger(nil)
	bdb, err := badger.Open(bopts)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open the database: %w", err)
	}
	bkv := kvbadger.New(bdb, isGoodKey)
	return bkv, f.dbCloser(bkv, bdb.Close), nil
}
