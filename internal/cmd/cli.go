// Package cmd holds the CLI command structs dispatched by kong.
package cmd

// LogOptions configure the process-wide logger.
type LogOptions struct {
	Level string `help:"Log level: debug, info, warn, error" default:"info" env:"HPM_DATA_GEN_LOG_LEVEL"`
	File  string `help:"Also write logs to this file" env:"HPM_DATA_GEN_LOG_FILE"`
}

// CLI is the root command tree.
type CLI struct {
	Log LogOptions `embed:"" prefix:"log."`

	Generate Generate      `cmd:"" help:"Merge SDK header metadata into chip description files"`
	Irqs     Irqs          `cmd:"" help:"Dump the interrupt table parsed from a chip's SDK header"`
	Config   ConfigCommand `cmd:"" help:"Manage configuration files"`

	ConfigFile string `name:"config" help:"Path to a configuration file" type:"path"`
}
