package cmd

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/hpmicro-rs/hpm-data-gen/internal/interrupts"
	"github.com/hpmicro-rs/hpm-data-gen/internal/sdk"
)

// Irqs dumps the raw interrupt table parsed from a chip family's SDK header,
// for checking header coverage before descriptions reference it.
type Irqs struct {
	Chip    string `arg:"" help:"Chip name, e.g. HPM5361"`
	SdkBase string `help:"Path to the hpm_sdk checkout (defaults to ./hpm_sdk)" env:"HPM_SDK_BASE"`
}

// Run is called by Kong when the irqs command is executed.
func (i *Irqs) Run(logger *slog.Logger) error {
	root := i.SdkBase
	if root == "" {
		root = sdk.DefaultRoot()
	}

	irqs, err := interrupts.Load(logger, sdk.New(root), i.Chip)
	if err != nil {
		return err
	}
	if irqs == nil {
		return fmt.Errorf("no interrupt header available for %s under %s", i.Chip, root)
	}

	names := make([]string, 0, len(irqs))
	for name := range irqs {
		names = append(names, name)
	}
	sort.Slice(names, func(a, b int) bool {
		if irqs[names[a]] != irqs[names[b]] {
			return irqs[names[a]] < irqs[names[b]]
		}
		return names[a] < names[b]
	})

	for _, name := range names {
		fmt.Printf("%3d  %s\n", irqs[name], name)
	}
	return nil
}
