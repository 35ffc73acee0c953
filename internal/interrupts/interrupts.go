// Package interrupts extracts interrupt numbering from hpm_soc_irq.h headers
// and attaches peripheral-level interrupt records.
package interrupts

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
// irq header always carries at least one IRQn entry, so this is fatal.
var ErrNoDefinitions = errors.New("no interrupt definitions found")

// Matches: #define IRQn_HDMA    34    /* HDMA IRQ */
// The trailing comment is part of the vendor format; lines without one are
// not interrupt table entries.
var irqPattern = regexp.MustCompile(`#define\s+IRQn_(\w+)\s+(\d+)\s+/\*.*\*/`)

// nameFixes reconciles known naming differences between the vendor header and
// the chip description documents. Header names are otherwise authoritative;
// extend this table as more variants are verified.
var nameFixes = map[string]string{
	"DAC": "DAC0", // HPM6360 header says DAC, descriptions expect DAC0
}

// Load resolves and parses the interrupt header for a chip name. It returns
// nil with no error when the SDK carries no header for the family; the caller
// decides whether that is acceptable.
func Load(logger *slog.Logger, loc *sdk.Locator, chipName string) (map[string]uint8, error) {
	path, ok := loc.Find(chipName, sdk.IrqHeader)
	if !ok {
		return nil, nil
	}
	irqs, err := parseHeader(path)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded interrupts", "count", len(irqs), "header", filepath.Base(path))
	return irqs, nil
}

func parseHeader(path string) (map[string]uint8, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read interrupts header %s: %w", path, err)
	}

	irqs := make(map[string]uint8)
	for _, m := range irqPattern.FindAllStringSubmatch(string(content), -1) {
		number, err := strconv.ParseUint(m[2], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("interrupt number for %s in %s: %w", m[1], path, err)
		}
		name := m[1]
		if fixed, ok := nameFixes[name]; ok {
			name = fixed
		}
		irqs[name] = uint8(number)
	}
	if len(irqs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDefinitions, path)
	}

	return irqs, nil
}

// Fill attaches an interrupt record to every peripheral whose name prefixes
// one of the core's interrupt names. It works off the interrupt list already
// attached to each core upstream, not off a header. UART peripherals only
// match their exact interrupt name: UART1 would otherwise pick up UART10 and
// upwards through the shared prefix.
func Fill(c *chip.Chip) {
	for i := range c.Cores {
		core := &c.Cores[i]
		for _, irq := range core.Interrupts {
			for j := range core.Peripherals {
				periph := &core.Peripherals[j]
				if !strings.HasPrefix(irq.Name, periph.Name) {
					continue
				}
				if strings.HasPrefix(periph.Name, "UART") && periph.Name != irq.Name {
					continue
				}
				periph.Interrupts = append(periph.Interrupts, chip.PeripheralInterrupt{
					Signal:    parseSignal(irq.Name),
					Interrupt: irq.Name,
				})
			}
		}
	}
}

// parseSignal derives the sub-signal label for an interrupt name. GPIO ports
// label as PA/PB/..., analog comparators as channels, everything else keeps
// its final name segment. A name without segments is the peripheral's single
// global interrupt.
func parseSignal(irqName string) string {
	idx := strings.LastIndex(irqName, "_")
	if idx < 0 {
		return "GLOBAL"
	}
	suffix := irqName[idx+1:]
	switch {
	case strings.HasPrefix(irqName, "GPIO"):
		return "P" + suffix
	case strings.HasPrefix(irqName, "ACMP"):
		return "CH" + suffix
	default:
		return suffix
	}
}
