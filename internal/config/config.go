// Package config defines the CLI structure and configuration for MiceWine.
package config

import (
	"github.com/Honkonx/wine-mice/internal/cmd"
)

type Log struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"MICEWINE_LOG_LEVEL"`
	File    string `help:"Log file path (default: none; logs only to console)" env:"MICEWINE_LOG_FILE"`
	RawFile string `help:"Raw packet log file path (default: none)" env:"MICEWINE_LOG_RAW_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Config string `help:"Config file (json, yaml or toml)" type:"path" env:"MICEWINE_CONFIG"`
	Log    `embed:"" prefix:"log."`

	Run     cmd.Run     `cmd:"" default:"withargs" help:"Poll the provider and bridge its controllers"`
	Probe   cmd.Probe   `cmd:"" help:"Query the provider once and print the controller slots"`
	Objects cmd.Objects `cmd:"" help:"Print the virtual joystick object table"`
}
