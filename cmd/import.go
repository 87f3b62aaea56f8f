package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/taskboard/internal/board"
	"github.com/nibzard/taskboard/internal/config"
	"github.com/nibzard/taskboard/internal/parallel"
	"github.com/nibzard/taskboard/internal/task"
)

const defaultImportWorkers = 4

// importCommand creates every task listed in a JSON or YAML file. Creates
// run concurrently and are applied in completion order.
func importCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskboard import", flag.ContinueOnError)
	fs.SetOutput(stderr)
	workers := fs.Int("workers", defaultImportWorkers, "Concurrent create requests (0 = unlimited)")
	failFast := fs.Bool("fail-fast", false, "Stop submitting after the first failure")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("import requires exactly one file")
	}

	inputs, err := readImportFile(fs.Arg(0))
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		fmt.Fprintln(stdout, "Nothing to import.")
		return nil
	}

	logger := cliLogger(cfg)
	b := newBoard(cfg, logger)
	pool := parallel.NewWorkerPool(ctx, *workers, *failFast)
	for i, in := range inputs {
		pool.Submit(fmt.Sprintf("entry %d", i+1), func(ctx context.Context) error {
			_, err := b.Create(ctx, in)
			if err != nil {
				return userError(err, board.FallbackCreate)
			}
			return nil
		})
	}

	results, errs := pool.Wait()
	for _, res := range results {
		logger.Debug("import entry finished", "entry", res.Key, "duration", res.Duration, "err", res.Err)
	}
	for _, err := range errs {
		fmt.Fprintf(stderr, "✗ %v\n", err)
	}
	fmt.Fprintf(stdout, "Imported %d of %d tasks.\n", len(results)-len(errs), len(inputs))
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d tasks failed to import", len(errs), len(inputs))
	}
	return nil
}

// readImportFile decodes a list of tasks. Files ending in .yaml or .yml
// are YAML; anything else is JSON.
func readImportFile(path string) ([]task.CreateInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}

	var inputs []task.CreateInput
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &inputs)
	default:
		err = json.Unmarshal(data, &inputs)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing import file %s: %w", path, err)
	}
	return inputs, nil
}
