// Copyright (c) 2025 BVK Chaitanya

package offline

import (
	"context"
	"flag"
	"fmt"

	"github.com/bvk/backtest/offline"
	"github.com/bvk/backtest/subcmds/cmdutil"
	"github.com/visvasity/cli"
)

type Products struct {
	snapshot string
}

func (c *Products) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := new(flag.FlagSet)
	fset.StringVar(&c.snapshot, "snapshot", "", "path to the offline exchange snapshot file")
	return "products", fset, cli.CmdFunc(c.run)
}

func (c *Products) Purpose() string {
	return "Prints the products served by an offline exchange snapshot"
}

func (c *Products) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("command takes no arguments")
	}
	if len(c.snapshot) == 0 {
		return fmt.Errorf("snapshot flag is required")
	}

	ex, err := offline.New(ctx, &offline.Options{SnapshotPath: c.snapshot})
	if err != nil {
		return err
	}
	defer ex.Close()

	products, err := ex.ListProducts(ctx)
	if err != nil {
		return err
	}
	return cmdutil.PrintJSON(products)
}
