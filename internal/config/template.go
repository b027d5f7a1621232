package config

import (
	_ "embed"
)

// DefaultConfigTOML is the commented configuration template written
// by `fpoint init`.
//
//go:embed default_config.toml
var DefaultConfigTOML string
