// Copyright (c) 2025 BVK Chaitanya

package store

import (
	"context"
	"flag"
	"fmt"

	"github.com/bvk/backtest/subcmds/cmdutil"
	"github.com/bvk/backtest/valuestore"
	"github.com/visvasity/cli"
)

type Save struct {
	cmdutil.InputFlags
}

func (c *Save) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := new(flag.FlagSet)
	c.InputFlags.SetFlags(fset)
	return "save", fset, cli.CmdFunc(c.run)
}

func (c *Save) Purpose() string {
	return "Saves a json or yaml document as a value in a file"
}

func (c *Save) run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("command takes one (output file) argument")
	}

	value, err := c.InputFlags.ReadValue()
	if err != nil {
		return err
	}

	valuestore.Save(value, args[0])
	return nil
}
