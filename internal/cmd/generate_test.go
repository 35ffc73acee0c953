package cmd

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpmicro-rs/hpm-data-gen/internal/chip"
)

const chipDoc = `name: HPM5361
cores:
  - include_dmamux: dmamux.yaml
    interrupts:
      - name: UART0
        number: 13
      - name: GPIO0_A
        number: 1
    peripherals:
      - name: UART0
      - name: GPIO0
`

const dmamuxHeader = `#define HPM_DMA_SRC_UART0_RX (0x8UL)
#define HPM_DMA_SRC_UART0_TX (0x9UL)
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestGenerateRun(t *testing.T) {
	dir := t.TempDir()
	sdkRoot := filepath.Join(dir, "hpm_sdk")
	chipsDir := filepath.Join(dir, "chips")
	outDir := filepath.Join(dir, "build")

	writeFile(t, filepath.Join(sdkRoot, "soc/HPM5300/HPM5361/hpm_dmamux_src.h"), dmamuxHeader)
	writeFile(t, filepath.Join(chipsDir, "HPM5361.yaml"), chipDoc)

	g := &Generate{Chips: chipsDir, Output: outDir, SdkBase: sdkRoot}
	require.NoError(t, g.Run(discardLogger()))

	c, err := chip.Load(filepath.Join(outDir, "HPM5361.yaml"))
	require.NoError(t, err)

	core := c.Cores[0]
	assert.Empty(t, core.IncludeDmamux)
	assert.ElementsMatch(t, []chip.DmaChannel{
		{Signal: "RX", Dmamux: "DMAMUX", Request: 8},
		{Signal: "TX", Dmamux: "DMAMUX", Request: 9},
	}, core.Peripherals[0].DmaChannels)
	assert.Equal(t, []chip.PeripheralInterrupt{{Signal: "GLOBAL", Interrupt: "UART0"}}, core.Peripherals[0].Interrupts)
	assert.Equal(t, []chip.PeripheralInterrupt{{Signal: "PA", Interrupt: "GPIO0_A"}}, core.Peripherals[1].Interrupts)
}

func TestGenerateChipFilter(t *testing.T) {
	dir := t.TempDir()
	chipsDir := filepath.Join(dir, "chips")
	outDir := filepath.Join(dir, "build")

	writeFile(t, filepath.Join(chipsDir, "HPM5361.yaml"), chipDoc)

	g := &Generate{Chips: chipsDir, Output: outDir, SdkBase: filepath.Join(dir, "hpm_sdk"), Chip: "HPM9999"}
	err := g.Run(discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no chip descriptions")
}

func TestGenerateContinuesPastFailingChip(t *testing.T) {
	dir := t.TempDir()
	sdkRoot := filepath.Join(dir, "hpm_sdk")
	chipsDir := filepath.Join(dir, "chips")
	outDir := filepath.Join(dir, "build")

	writeFile(t, filepath.Join(sdkRoot, "soc/HPM5300/HPM5361/hpm_dmamux_src.h"), dmamuxHeader)
	// The HPM6280 header exists but carries no definitions, which is fatal
	// for that chip only.
	writeFile(t, filepath.Join(sdkRoot, "soc/HPM6200/HPM6280/hpm_dmamux_src.h"), "/* stripped */\n")

	writeFile(t, filepath.Join(chipsDir, "HPM5361.yaml"), chipDoc)
	writeFile(t, filepath.Join(chipsDir, "HPM6280.yaml"), `name: HPM6280
cores:
  - include_dmamux: dmamux.yaml
    peripherals:
      - name: UART0
`)

	g := &Generate{Chips: chipsDir, Output: outDir, SdkBase: sdkRoot}
	err := g.Run(discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")

	// The good chip still made it to the output directory.
	_, err = chip.Load(filepath.Join(outDir, "HPM5361.yaml"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "HPM6280.yaml"))
	assert.Error(t, err)
}
