package chip

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `name: HPM5361
cores:
  - name: hpm5361-cpu0
    include_dmamux: dmamux.yaml
    interrupts:
      - name: UART0
        number: 13
    peripherals:
      - name: UART0
      - name: GPTMR0
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "HPM5361.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "HPM5361", c.Name)
	require.Len(t, c.Cores, 1)
	assert.Equal(t, "dmamux.yaml", c.Cores[0].IncludeDmamux)
	assert.Equal(t, []Interrupt{{Name: "UART0", Number: 13}}, c.Cores[0].Interrupts)
	require.Len(t, c.Cores[0].Peripherals, 2)
	assert.Equal(t, "UART0", c.Cores[0].Peripherals[0].Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cores: {not: [a, chip"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "HPM5361.yaml")
	require.NoError(t, os.WriteFile(src, []byte(sampleDoc), 0o644))

	c, err := Load(src)
	require.NoError(t, err)

	// Simulate the generator: consume the marker, attach records.
	c.Cores[0].IncludeDmamux = ""
	c.Cores[0].Peripherals[0].DmaChannels = append(c.Cores[0].Peripherals[0].DmaChannels,
		DmaChannel{Signal: "RX", Dmamux: "DMAMUX", Request: 8})
	c.Cores[0].Peripherals[0].Interrupts = append(c.Cores[0].Peripherals[0].Interrupts,
		PeripheralInterrupt{Signal: "GLOBAL", Interrupt: "UART0"})

	out := filepath.Join(dir, "out.yaml")
	require.NoError(t, c.Save(out))

	reloaded, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, c, reloaded)
	assert.Empty(t, reloaded.Cores[0].IncludeDmamux)
}
