// Package config loads the foldspace configuration from YAML, falling back
// to embedded defaults.
package config

// Config is the root configuration.
type Config struct {
	Grid   GridConfig   `yaml:"grid"`
	Engine EngineConfig `yaml:"engine"`
	UI     UIConfig     `yaml:"ui"`
}

// GridConfig holds grid construction parameters.
type GridConfig struct {
	// CellSize is the world-space edge length of one cell. Geometry is
	// scale-invariant; this only needs to comfortably exceed the epsilon.
	CellSize float64 `yaml:"cell_size"`
}

// EngineConfig holds the fold engine tolerances.
type EngineConfig struct {
	AxisSnapDegrees       float64 `yaml:"axis_snap_degrees"`
	NearDegenerateDegrees float64 `yaml:"near_degenerate_degrees"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ShowSeams   bool `yaml:"show_seams"`
	ShowHistory bool `yaml:"show_history"`
}

// Default returns the hardcoded fallback configuration, used when even the
// embedded YAML fails to parse.
func Default() Config {
	return Config{
		Grid: GridConfig{
			CellSize: 1.0,
		},
		Engine: EngineConfig{
			AxisSnapDegrees:       5,
			NearDegenerateDegrees: 8,
		},
		UI: UIConfig{
			ShowSeams:   true,
			ShowHistory: true,
		},
	}
}
