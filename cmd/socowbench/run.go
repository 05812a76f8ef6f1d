package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/geofduf/socow/workload"
)

var (
	runCmd = &cobra.Command{
		Use:   "run SCRIPT",
		Short: "Execute a YAML workload script and print the resulting store report",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}

	loadFile string
	dumpFile string
	strict   bool
)

func init() {
	flags := runCmd.Flags()
	flags.StringVar(&loadFile, "load", "", "load the store from a snapshot before running")
	flags.StringVar(&dumpFile, "dump", "", "write a snapshot of the store after running")
	flags.BoolVar(&strict, "strict", false, "fail if any statement fails")
	rootCmd.AddCommand(runCmd)
}

func run(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	script, err := workload.ParseScript(f)
	f.Close()
	if err != nil {
		return err
	}

	store := workload.NewStore()
	if loadFile != "" {
		data, err := os.ReadFile(loadFile)
		if err != nil {
			return err
		}
		if err := store.Load(data); err != nil {
			return fmt.Errorf("cannot load %s: %w", loadFile, err)
		}
		slog.Debug("loaded snapshot", "file", loadFile, "vectors", store.Len())
	}

	slog.Info("running script", "name", script.Name, "statements", len(script.Statements))
	err = script.Run(store)
	var merr *multierror.Error
	switch {
	case errors.As(err, &merr):
		for _, e := range merr.Errors {
			slog.Warn("statement failed", "err", e)
		}
		if strict {
			return fmt.Errorf("%d of %d statements failed", len(merr.Errors), len(script.Statements))
		}
	case err != nil:
		return err
	}
	for _, s := range store.Stats() {
		slog.Debug("vector", "key", s.Key, "len", s.Len, "cap", s.Cap, "inline", s.Inlined)
	}

	if dumpFile != "" {
		data, err := store.Dump()
		if err != nil {
			return err
		}
		if err := os.WriteFile(dumpFile, data, 0o644); err != nil {
			return err
		}
		slog.Debug("wrote snapshot", "file", dumpFile, "bytes", len(data))
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", store.Report())
	return err
}
