package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/cenkalti/yap/internal/config"
	"github.com/cenkalti/yap/internal/ctxfile"
	"github.com/cenkalti/yap/internal/dateexpr"
	"github.com/cenkalti/yap/internal/logging"
	"github.com/cenkalti/yap/internal/store"
	"github.com/cenkalti/yap/internal/ui"
)

// app holds what one command invocation needs. It is built before the
// command runs and closed after it returns.
type app struct {
	cfg     *config.Config
	sink    *logging.Sink
	log     *log.Logger
	ctxFile *ctxfile.File
	parser  *dateexpr.Parser

	db *store.Store
}

func newApp(cmd *cobra.Command) (*app, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{
		File:  configFile,
		Flags: cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}

	ui.Configure(cfg.Color, os.Stdout)

	sink := logging.Open(logging.Options{
		Debug:      cfg.Debug,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})

	return &app{
		cfg:     cfg,
		sink:    sink,
		log:     sink.Logger("yap"),
		ctxFile: ctxfile.New(cfg.ContextPath()),
		parser:  &dateexpr.Parser{Natural: cfg.NaturalDates},
	}, nil
}

// store opens and migrates the database on first use.
func (a *app) store(ctx context.Context) (*store.Store, error) {
	if a.db != nil {
		return a.db, nil
	}

	opts := store.Options{DoneLimit: a.cfg.DoneLimit}
	if a.sink.Enabled() {
		opts.Logger = a.sink.Logger("store")
	}
	s, err := store.Open(a.cfg.DBPath(), opts)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	a.log.Printf("opened %s", s.Path())
	a.db = s
	return s, nil
}

func (a *app) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	_ = a.sink.Close()
}

// scope returns the context a view is limited to: the explicit flag when
// given, otherwise the persisted current context.
func (a *app) scope(cmd *cobra.Command) (string, error) {
	if f := cmd.Flags().Lookup("context"); f != nil && f.Changed {
		return f.Value.String(), nil
	}
	name, _, err := a.ctxFile.Get()
	return name, err
}

// run wraps a command body with app setup and teardown.
func run(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		return fn(cmd, args, a)
	}
}
