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

type Load struct {
	strict bool
}

func (c *Load) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := new(flag.FlagSet)
	fset.BoolVar(&c.strict, "strict", false, "when true, load failures are returned as errors")
	return "load", fset, cli.CmdFunc(c.run)
}

func (c *Load) Purpose() string {
	return "Loads a value from a file and prints it as json"
}

func (c *Load) run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("command takes one (input file) argument")
	}

	if c.strict {
		value, err := valuestore.LoadFile(args[0])
		if err != nil {
			return err
		}
		return cmdutil.PrintJSON(value)
	}

	return cmdutil.PrintJSON(valuestore.Load(args[0]))
}
