// Package dmamux extracts DMA request routing from hpm_dmamux_src.h headers
// and attaches DmaChannel records to the matching peripherals.
package dmamux

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/hpmicro-rs/hpm-data-gen/internal/chip"
	"github.com/hpmicro-rs/hpm-data-gen/internal/sdk"
)

// ErrNoDefinitions reports a header that yielded zero matches. A well-formed
// dmamux header always carries at least one source entry, so this is fatal.
var ErrNoDefinitions = errors.New("no DMAMUX definitions found")

// Matches: #define HPM_DMA_SRC_UART0_RX (0x8UL) /* UART0 Receive */
var srcPattern = regexp.MustCompile(`#define\s+HPM_DMA_SRC_(\w+)\s+\((0x[0-9A-F]+)UL\)`)

// All current families route requests through a single mux instance.
const muxInstance = "DMAMUX"

// Process loads DMA-mux routing for every core of the chip that still has a
// pending include marker. The marker is consumed before anything else so a
// core is never processed twice; cores without one are left untouched. A chip
// family without a dmamux header in the SDK is skipped with a warning.
func Process(logger *slog.Logger, loc *sdk.Locator, c *chip.Chip) error {
	for i := range c.Cores {
		core := &c.Cores[i]
		if core.IncludeDmamux == "" {
			continue
		}
		core.IncludeDmamux = ""

		logger.Info("loading DMAMUX from header", "chip", c.Name)

		path, ok := loc.Find(c.Name, sdk.DmamuxHeader)
		if !ok {
			logger.Warn("no DMAMUX header found, skipping", "chip", c.Name)
			continue
		}

		requests, err := parseHeader(path)
		if err != nil {
			return err
		}
		logger.Info("loaded dmamux entries", "count", len(requests), "header", filepath.Base(path))

		for name, request := range requests {
			prefix, _, _ := strings.Cut(name, "_")
			for j := range core.Peripherals {
				periph := &core.Peripherals[j]
				if periph.Name != prefix {
					continue
				}
				periph.DmaChannels = append(periph.DmaChannels, chip.DmaChannel{
					Signal:  parseSignal(name, periph.Name),
					Dmamux:  muxInstance,
					Request: request,
				})
			}
		}
	}
	return nil
}

// parseHeader extracts source name to request number pairs from a dmamux
// source header. Request selectors are 8-bit; a wider value means the header
// does not hold what we think it holds.
func parseHeader(path string) (map[string]uint8, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dmamux header %s: %w", path, err)
	}

	requests := make(map[string]uint8)
	for _, m := range srcPattern.FindAllStringSubmatch(string(content), -1) {
		value, err := strconv.ParseUint(strings.TrimPrefix(m[2], "0x"), 16, 8)
		if err != nil {
			return nil, fmt.Errorf("dmamux request %s in %s: %w", m[1], path, err)
		}
		requests[m[1]] = uint8(value)
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDefinitions, path)
	}

	return requests, nil
}

// parseSignal derives the sub-signal label for a dmamux source name.
// UART0_RX becomes RX, GPTMR0_1 becomes CH1 (timer sources number their
// channels bare), a bare I2C instance maps to GLOBAL and any other bare name
// falls back to the peripheral name itself.
func parseSignal(name, periphName string) string {
	if idx := strings.LastIndex(name, "_"); idx >= 0 {
		suffix := name[idx+1:]
		if strings.HasPrefix(name, "GPTMR") || strings.HasPrefix(name, "NTMR") {
			return "CH" + suffix
		}
		return suffix
	}
	if strings.HasPrefix(name, "I2C") {
		return "GLOBAL"
	}
	return periphName
}
