// Copyright (c) 2025 BVK Chaitanya

package offline

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"slices"

	"github.com/bvk/backtest/gobs"
	"github.com/bvk/backtest/subcmds/cmdutil"
	"github.com/bvk/backtest/valuestore"
	"github.com/visvasity/cli"
)

type Snapshot struct {
	jsonFile string
}

func (c *Snapshot) Command() (string, *flag.FlagSet, cli.CmdFunc) {
	fset := new(flag.FlagSet)
	fset.StringVar(&c.jsonFile, "json", "", "file with the snapshot in json format (default stdin)")
	return "snapshot", fset, cli.CmdFunc(c.run)
}

func (c *Snapshot) Purpose() string {
	return "Saves market data in json format as an offline exchange snapshot"
}

func (c *Snapshot) run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("command takes one (output snapshot file) argument")
	}

	in, err := cmdutil.OpenInput(c.jsonFile)
	if err != nil {
		return err
	}
	defer in.Close()

	snapshot := new(gobs.OfflineSnapshot)
	if err := json.NewDecoder(in).Decode(snapshot); err != nil {
		return fmt.Errorf("could not decode snapshot json: %w", err)
	}

	for id, candles := range snapshot.CandlesMap {
		if candles == nil {
			continue
		}
		slices.SortFunc(candles.Candles, func(a, b *gobs.Candle) int {
			return a.StartTime.Compare(b.StartTime.Time)
		})
		if snapshot.FindProduct(id) == nil {
			log.Printf("snapshot has candles for unknown product %q (ignored)", id)
		}
	}

	if err := valuestore.SaveFileAs(args[0], snapshot); err != nil {
		return err
	}
	log.Printf("saved snapshot with %d products to %s", len(snapshot.Products), args[0])
	return nil
}
