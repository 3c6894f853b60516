// ABOUTME: The settings subcommand printing and updating stored settings
// ABOUTME: Shows defaults or the configured store merged over them

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"linkoff-engine/core/domain"
	"linkoff-engine/core/settings"
	"linkoff-engine/linkoff"
)

func runSettings(args []string, out io.Writer) error {
	flagSet := pflag.NewFlagSet("settings", pflag.ContinueOnError)
	configPath := flagSet.String("config", "", "YAML file overlaying the environment configuration")
	defaults := flagSet.Bool("defaults", false, "print the built-in defaults and ignore the store")
	set := flagSet.StringArray("set", nil, "store one setting, key=value (repeatable)")
	asJSON := flagSet.Bool("json", false, "print settings as a JSON object")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	ctx := context.Background()
	snap := domain.DefaultSnapshot()

	if !*defaults {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		logger := newLogger(cfg.Log)
		store, closeStore, err := openStore(cfg.Store, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		loader := settings.NewLoader(store, logger)
		if len(*set) > 0 {
			values, err := parseSettings(*set)
			if err != nil {
				return err
			}
			if err := loader.Save(ctx, values); err != nil {
				return err
			}
		}
		if snap, err = loader.Load(ctx); err != nil {
			return err
		}
	}

	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap.Raw())
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tLABEL\tVALUE")
	for _, s := range linkoff.Settings(snap) {
		fmt.Fprintf(tw, "%s\t%s\t%v\n", s.Key, s.Label, s.Value)
	}
	return tw.Flush()
}
