package maplib

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// TerrainType defines the terrain of a tile
type TerrainType uint8

const (
	TerrainGrass TerrainType = iota
	TerrainDirt
	TerrainSand
	TerrainWater
	TerrainRock
	TerrainCliff
	TerrainRoad
	TerrainForest
)

// Passability flags
type PassFlag uint8

const (
	PassInfantry PassFlag = 1 << iota
	PassMounted
	PassFlying
	PassAll PassFlag = PassInfantry | PassMounted | PassFlying
)

// ErrBadMap is returned when a map file does not describe a consistent grid
var ErrBadMap = errors.New("maplib: malformed map")

// Tile represents a single map tile
type Tile struct {
	Terrain  TerrainType `json:"terrain"`
	Passable PassFlag    `json:"passable"`
	Occupied bool        `json:"-"` // runtime: obstacle placed here
}

// TileMap is the grid the simulation runs on. Tile (x, y) is centred on the
// map point (x, y).
type TileMap struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Tiles  []Tile `json:"tiles"`

	StartPositions []StartPos `json:"start_positions"`
}

// StartPos defines a team start position
type StartPos struct {
	Team int `json:"team"`
	X    int `json:"x"`
	Y    int `json:"y"`
}

// NewTileMap creates a new map of open grass
func NewTileMap(name string, width, height int) *TileMap {
	tm := &TileMap{
		Name:   name,
		Width:  width,
		Height: height,
		Tiles:  make([]Tile, width*height),
	}
	for i := range tm.Tiles {
		tm.Tiles[i] = Tile{Terrain: TerrainGrass, Passable: PassAll}
	}
	return tm
}

// At returns a pointer to the tile at (x, y)
func (tm *TileMap) At(x, y int) *Tile {
	if !tm.InBounds(x, y) {
		return nil
	}
	return &tm.Tiles[y*tm.Width+x]
}

// InBounds checks if coordinates are within map bounds
func (tm *TileMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < tm.Width && y < tm.Height
}

// IsPassable checks if a tile can be traversed by a given movement type
func (tm *TileMap) IsPassable(x, y int, flag PassFlag) bool {
	t := tm.At(x, y)
	if t == nil {
		return false
	}
	return t.Passable&flag != 0 && !t.Occupied
}

// SetTerrain sets terrain for a rectangular region (inclusive)
func (tm *TileMap) SetTerrain(x1, y1, x2, y2 int, terrain TerrainType) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if t := tm.At(x, y); t != nil {
				t.Terrain = terrain
				t.Passable = terrainPassability(terrain)
			}
		}
	}
}

// SetOccupied marks a tile as occupied/unoccupied by an obstacle
func (tm *TileMap) SetOccupied(x, y int, occupied bool) {
	if t := tm.At(x, y); t != nil {
		t.Occupied = occupied
	}
}

func terrainPassability(terrain TerrainType) PassFlag {
	switch terrain {
	case TerrainWater:
		return PassFlying
	case TerrainCliff:
		return PassFlying
	case TerrainRock, TerrainForest:
		return PassInfantry | PassFlying
	default:
		return PassAll
	}
}

// LoadJSON loads a map from a JSON file
func LoadJSON(path string) (*TileMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map %s: %w", path, err)
	}
	var tm TileMap
	if err := json.Unmarshal(data, &tm); err != nil {
		return nil, fmt.Errorf("decode map %s: %w", path, err)
	}
	if tm.Width <= 0 || tm.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrBadMap, tm.Width, tm.Height)
	}
	// An empty tile list means "all grass"
	if len(tm.Tiles) == 0 {
		tm.Tiles = NewTileMap(tm.Name, tm.Width, tm.Height).Tiles
	}
	if len(tm.Tiles) != tm.Width*tm.Height {
		return nil, fmt.Errorf("%w: %d tiles for %dx%d", ErrBadMap, len(tm.Tiles), tm.Width, tm.Height)
	}
	for _, sp := range tm.StartPositions {
		if !tm.IsPassable(sp.X, sp.Y, PassInfantry) {
			return nil, fmt.Errorf("%w: team %d starts on blocked or off-map cell (%d, %d)", ErrBadMap, sp.Team, sp.X, sp.Y)
		}
	}
	return &tm, nil
}
