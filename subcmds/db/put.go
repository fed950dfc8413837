// Copyright (c) 2023 BVK Chaitanya

package db

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/bvk/backtest/subcmds/cmdutil"
	"github.com/bvk/backtest/valuestore"
	"github.com/visvasity/cli"
)

type Put struct {
	cmdutil.DBFlags

	cmdutil.InputFlags
}

func (c *Put) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := new(flag.FlagSet)
	c.DBFlags.SetFlags(fset)
	c.InputFlags.SetFlags(fset)
	return "put", fset, cli.CmdFunc(c.run)
}

func (c *Put) Purpose() string {
	return "Saves a json or yaml document as a named value in the database"
}

func (c *Put) run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("command takes one (value name) argument")
	}

	value, err := c.InputFlags.ReadValue()
	if err != nil {
		return err
	}

	db, closer, err := c.DBFlags.GetDatabase(ctx)
	if err != nil {
		return err
	}
	defer closer()

	if err := valuestore.NewDB(db).Save(ctx, args[0], value); err != nil {
		return err
	}
	if c.DBFlags.IsBackupDatabase() {
		log.Printf("value %q is saved into an in-memory database (use -backup-after to keep it)", args[0])
	}
	return nil
}
