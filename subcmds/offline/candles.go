// Copyright (c) 2025 BVK Chaitanya

package offline

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/bvk/backtest/offline"
	"github.com/bvk/backtest/subcmds/cmdutil"
	"github.com/bvk/backtest/timerange"
	"github.com/visvasity/cli"
)

type Candles struct {
	snapshot  string
	productID string

	since  string
	until  string
	period string
}

func (c *Candles) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := new(flag.FlagSet)
	fset.StringVar(&c.snapshot, "snapshot", "", "path to the offline exchange snapshot file")
	fset.StringVar(&c.productID, "product", "", "product id for the candles")
	fset.StringVar(&c.since, "since", "", "start time in RFC3339 format (default all candles)")
	fset.StringVar(&c.until, "until", "", "end time in RFC3339 format (default all candles)")
	fset.StringVar(&c.period, "period", "", "calendar period name instead of since/until (one of "+strings.Join(timerange.Names, ", ")+")")
	return "candles", fset, cli.CmdFunc(c.run)
}

func (c *Candles) Purpose() string {
	return "Prints the candles of a product from an offline exchange snapshot"
}

func (c *Candles) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("command takes no arguments")
	}
	if len(c.snapshot) == 0 {
		return fmt.Errorf("snapshot flag is required")
	}
	if len(c.productID) == 0 {
		return fmt.Errorf("product flag is required")
	}

	var r *timerange.Range
	if len(c.period) != 0 {
		if len(c.since) != 0 || len(c.until) != 0 {
			return fmt.Errorf("period flag cannot be used with since or until flags")
		}
		v, err := timerange.Named(c.period, time.Now())
		if err != nil {
			return err
		}
		r = v
	} else {
		v, err := timerange.Parse(c.since, c.until)
		if err != nil {
			return err
		}
		r = v
	}

	ex, err := offline.New(ctx, &offline.Options{SnapshotPath: c.snapshot})
	if err != nil {
		return err
	}
	defer ex.Close()

	candles, err := ex.HistoricCandles(ctx, c.productID, r.Begin, r.End)
	if err != nil {
		return err
	}
	return cmdutil.PrintJSON(candles)
}
