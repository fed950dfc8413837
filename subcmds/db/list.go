// Copyright (c) 2023 BVK Chaitanya

package db

import (
	"context"
	"flag"
	"fmt"
	"regexp"

	"github.com/bvk/backtest/subcmds/cmdutil"
	"github.com/bvk/backtest/valuestore"
	"github.com/visvasity/cli"
)

type List struct {
	cmdutil.DBFlags

	nameRe string
}

func (c *List) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := new(flag.FlagSet)
	c.DBFlags.SetFlags(fset)
	fset.StringVar(&c.nameRe, "name-regexp", "", "regular expression to pick value names")
	return "list", fset, cli.CmdFunc(c.run)
}

func (c *List) Purpose() string {
	return "Prints names of the values in the database"
}

func (c *List) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("command takes no arguments")
	}

	var nameRe *regexp.Regexp
	if len(c.nameRe) != 0 {
		re, err := regexp.Compile(c.nameRe)
		if err != nil {
			return fmt.Errorf("could not compile name-regexp value: %w", err)
		}
		nameRe = re
	}

	db, closer, err := c.DBFlags.GetDatabase(ctx)
	if err != nil {
		return err
	}
	defer closer()

	names, err := valuestore.NewDB(db).List(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		if nameRe != nil && !nameRe.MatchString(name) {
			continue
		}
		fmt.Println(name)
	}
	return nil
}
