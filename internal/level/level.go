// Package level loads and validates level files. Levels describe the only
// boundary data the fold engine needs: grid size, initial cell types and the
// player start. JSON and YAML files carry the same shape.
package level

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/foldspace/internal/fold"
)

// Level is a parsed level definition.
type Level struct {
	ID          string
	Name        string
	Width       int
	Height      int
	PlayerStart fold.Coord
	Cells       map[fold.Coord]fold.CellType
	Difficulty  int
	ParFolds    int
	FilePath    string
}

// levelFile is the on-disk shape, shared by the JSON and YAML formats.
type levelFile struct {
	ID          string         `json:"level_id" yaml:"level_id"`
	Name        string         `json:"level_name" yaml:"level_name"`
	GridSize    vector         `json:"grid_size" yaml:"grid_size"`
	PlayerStart vector         `json:"player_start_position" yaml:"player_start_position"`
	CellData    map[string]int `json:"cell_data" yaml:"cell_data"`
	Difficulty  int            `json:"difficulty" yaml:"difficulty"`
	ParFolds    int            `json:"par_folds,omitempty" yaml:"par_folds,omitempty"`
}

type vector struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// LoadFile parses a single level file, dispatching on the extension.
func LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: cannot read %s: %w", path, err)
	}

	var raw levelFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("level: cannot parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("level: cannot parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("level: unsupported file extension %q", filepath.Ext(path))
	}

	lvl := &Level{
		ID:          raw.ID,
		Name:        raw.Name,
		Width:       raw.GridSize.X,
		Height:      raw.GridSize.Y,
		PlayerStart: fold.C(raw.PlayerStart.X, raw.PlayerStart.Y),
		Cells:       make(map[fold.Coord]fold.CellType, len(raw.CellData)),
		Difficulty:  raw.Difficulty,
		ParFolds:    raw.ParFolds,
		FilePath:    path,
	}
	for key, code := range raw.CellData {
		coord, err := parseCoordKey(key)
		if err != nil {
			return nil, fmt.Errorf("level: %s: %w", path, err)
		}
		lvl.Cells[coord] = fold.CellType(code)
	}
	return lvl, nil
}

// parseCoordKey parses a cell_data key of the form "x,y".
func parseCoordKey(key string) (fold.Coord, error) {
	parts := strings.Split(key, ",")
	if len(parts) != 2 {
		return fold.Coord{}, fmt.Errorf("bad cell_data key %q", key)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return fold.Coord{}, fmt.Errorf("bad cell_data key %q: %w", key, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return fold.Coord{}, fmt.Errorf("bad cell_data key %q: %w", key, err)
	}
	return fold.C(x, y), nil
}

// NewGrid builds the initial fold grid for this level.
func (l *Level) NewGrid(cellSize float64) *fold.Grid {
	g := fold.NewGrid(l.Width, l.Height, cellSize)
	for coord, t := range l.Cells {
		if g.InBounds(coord) && t.Valid() {
			g.SetCellType(coord, t)
		}
	}
	return g
}

// NewEngine builds a fold engine and player positioned at the level start.
func (l *Level) NewEngine(cellSize float64, cfg fold.EngineConfig) (*fold.Engine, *fold.SimplePlayer) {
	player := fold.NewPlayer(l.PlayerStart)
	return fold.NewEngine(l.NewGrid(cellSize), player, cfg), player
}
