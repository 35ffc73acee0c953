// Package chip defines the chip description data contract shared with the
// rest of the hpm-data pipeline, and its YAML on-disk form. The generator
// mutates these structures in place; it never removes records once attached.
package chip

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Chip is one chip-family description document.
type Chip struct {
	Name  string `yaml:"name"`
	Cores []Core `yaml:"cores"`
}

// Core groups the peripherals and interrupt lines owned by one CPU core.
// IncludeDmamux marks that DMA-mux routing still has to be loaded from the
// vendor SDK; it is consumed (cleared) the first time the core is processed.
type Core struct {
	Name          string       `yaml:"name,omitempty"`
	IncludeDmamux string       `yaml:"include_dmamux,omitempty"`
	Interrupts    []Interrupt  `yaml:"interrupts,omitempty"`
	Peripherals   []Peripheral `yaml:"peripherals"`
}

// Interrupt is a core-level interrupt descriptor, pre-populated upstream.
type Interrupt struct {
	Name   string `yaml:"name"`
	Number uint8  `yaml:"number"`
}

// Peripheral is a single peripheral instance. Its name doubles as the prefix
// that DMA-mux signals and interrupt names are matched against.
type Peripheral struct {
	Name        string                `yaml:"name"`
	DmaChannels []DmaChannel          `yaml:"dma_channels,omitempty"`
	Interrupts  []PeripheralInterrupt `yaml:"interrupts,omitempty"`
}

// DmaChannel routes one peripheral DMA request through the DMA multiplexer.
type DmaChannel struct {
	Signal  string `yaml:"signal"`
	Dmamux  string `yaml:"dmamux,omitempty"`
	Request uint8  `yaml:"request"`
}

// PeripheralInterrupt ties a peripheral sub-signal to the interrupt name it
// is serviced by.
type PeripheralInterrupt struct {
	Signal    string `yaml:"signal"`
	Interrupt string `yaml:"interrupt"`
}

// Load reads a chip description document.
func Load(path string) (*Chip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chip description %s: %w", path, err)
	}
	var c Chip
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse chip description %s: %w", path, err)
	}
	return &c, nil
}

// Save writes the description back out, including any records attached since
// it was loaded.
func (c *Chip) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal chip description %s: %w", c.Name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write chip description %s: %w", path, err)
	}
	return nil
}
