package config

import (
	_ "embed"
)

//go:embed defaults/foldspace.yaml
var defaultYAML []byte
