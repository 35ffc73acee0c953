package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpmicro-rs/hpm-data-gen/internal/chip"
	"github.com/hpmicro-rs/hpm-data-gen/internal/dmamux"
	"github.com/hpmicro-rs/hpm-data-gen/internal/interrupts"
	"github.com/hpmicro-rs/hpm-data-gen/internal/sdk"
)

// Generate merges DMA-mux routing and peripheral interrupt records from the
// vendor SDK headers into every chip description in a directory.
type Generate struct {
	Chips   string `arg:"" help:"Directory containing chip description YAML files" type:"existingdir"`
	Output  string `help:"Directory for the augmented chip descriptions" default:"./build/data" env:"HPM_DATA_OUTPUT"`
	SdkBase string `help:"Path to the hpm_sdk checkout (defaults to ./hpm_sdk)" env:"HPM_SDK_BASE"`
	Chip    string `help:"Process only the chip with this name"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger) error {
	root := g.SdkBase
	if root == "" {
		root = sdk.DefaultRoot()
	}
	loc := sdk.New(root)

	entries, err := os.ReadDir(g.Chips)
	if err != nil {
		return fmt.Errorf("read chips directory: %w", err)
	}
	if err := os.MkdirAll(g.Output, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	logger.Info("generating chip data", "chips", g.Chips, "sdk", root, "output", g.Output)

	var processed, failed int
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if g.Chip != "" && !strings.EqualFold(name, g.Chip) {
			continue
		}

		// One chip failing must not stop the rest of the batch.
		if err := g.processChip(logger, loc, filepath.Join(g.Chips, entry.Name()), entry.Name()); err != nil {
			logger.Error("chip processing failed", "chip", name, "error", err)
			failed++
			continue
		}
		processed++
	}

	logger.Info("generation finished", "processed", processed, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d chip(s) failed", failed, processed+failed)
	}
	if processed == 0 {
		return fmt.Errorf("no chip descriptions found in %s", g.Chips)
	}
	return nil
}

func (g *Generate) processChip(logger *slog.Logger, loc *sdk.Locator, path, fileName string) error {
	c, err := chip.Load(path)
	if err != nil {
		return err
	}
	logger.Info("processing chip", "chip", c.Name)

	if err := dmamux.Process(logger, loc, c); err != nil {
		return err
	}
	interrupts.Fill(c)

	return c.Save(filepath.Join(g.Output, fileName))
}
