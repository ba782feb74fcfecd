package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/idelchi/hsrsize/internal/dirstat"
	"github.com/idelchi/hsrsize/internal/export"
	"github.com/idelchi/hsrsize/internal/logging"
	"github.com/idelchi/hsrsize/internal/store"
)

// settings is the fully resolved configuration of one run.
type settings struct {
	Root        string
	Destination string
	Driver      string
	Output      string
	TopN        int
	Parquet     string
	Compression string
	LogLevel    string
	LogJSON     bool
}

func logic(ctx context.Context, set settings, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	level, err := logging.ParseLevel(set.LogLevel)
	if err != nil {
		return err
	}

	log := logging.New(stderr, level, set.LogJSON)

	enableProgress := set.Output != "json" &&
		set.LogLevel != "debug" &&
		stderr == os.Stderr &&
		isatty.IsTerminal(os.Stderr.Fd())

	var (
		line         *statusLine
		progressHook func(files, bytes int64)
	)

	if enableProgress {
		line = newStatusLine(stderr, set.Root)
		progressHook = line.update
	}

	report, err := dirstat.Run(ctx, dirstat.Options{Path: set.Root, TopN: set.TopN},
		logging.Component(log, "dirstat"), progressHook)

	if line != nil {
		line.done()
	}

	if err != nil {
		return err
	}

	persistErr := store.Persist(ctx, set.Destination, store.Options{Driver: set.Driver}, log,
		report.Inventory, report.Extensions, report.Directories)

	if set.Parquet != "" {
		if err := export.WriteInventory(set.Parquet, report.Inventory,
			export.Options{Compression: set.Compression}); err != nil {
			return errors.Join(persistErr, fmt.Errorf("exporting parquet: %w", err))
		}

		log.Info("inventory exported", "path", set.Parquet)
	}

	switch set.Output {
	case "json":
		if err := PrintJSON(report, stdout); err != nil {
			return err
		}
	case "table":
		if err := PrintTable(report, stdout); err != nil {
			return err
		}
	}

	return persistErr
}
