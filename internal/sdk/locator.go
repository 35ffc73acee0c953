// Package sdk resolves vendor header files under an hpm_sdk checkout.
package sdk

import (
	"os"
	"path/filepath"
	"strings"
)

// Header kinds resolvable per chip family. Both live in the same soc
// directory for every family.
const (
	DmamuxHeader = "hpm_dmamux_src.h"
	IrqHeader    = "hpm_soc_irq.h"
)

// familyDir maps a chip-family name prefix to the SDK soc directory carrying
// its headers. Entries are checked in order, first match wins: more specific
// prefixes must come before shorter prefixes of the same family (HPM5301
// before HPM53, which covers the remaining HPM5361 sub-variants).
type familyDir struct {
	prefix string
	dir    string
}

var familyDirs = []familyDir{
	{"HPM5301", "soc/HPM5300/HPM5301"},
	{"HPM53", "soc/HPM5300/HPM5361"},
	{"HPM5E", "soc/HPM5E00/HPM5E31"},
	{"HPM62", "soc/HPM6200/HPM6280"},
	{"HPM63", "soc/HPM6300/HPM6360"},
	{"HPM67", "soc/HPM6700/HPM6750"},
	{"HPM64", "soc/HPM6700/HPM6750"},
	{"HPM68", "soc/HPM6800/HPM6880"},
	{"HPM6E", "soc/HPM6E00/HPM6E80"},
	{"HPM6P", "soc/HPM6P00/HPM6P81"},
}

// Locator resolves header paths under a fixed SDK root. The root is supplied
// by the caller (typically from HPM_SDK_BASE) so the locator itself carries
// no environment state.
type Locator struct {
	root string
}

// New returns a Locator rooted at the given SDK path.
func New(root string) *Locator {
	return &Locator{root: root}
}

// DefaultRoot returns the SDK location used when no override is configured:
// ./hpm_sdk under the current working directory.
func DefaultRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		return "hpm_sdk"
	}
	return filepath.Join(wd, "hpm_sdk")
}

// Find resolves the header of the given kind for a chip name. ok is false
// when no family prefix matches or the header does not exist on disk; callers
// treat that as "no header available" rather than as an error.
func (l *Locator) Find(chipName, header string) (path string, ok bool) {
	for _, f := range familyDirs {
		if !strings.HasPrefix(chipName, f.prefix) {
			continue
		}
		path = filepath.Join(l.root, f.dir, header)
		if _, err := os.Stat(path); err != nil {
			return "", false
		}
		return path, true
	}
	return "", false
}
