package config

import (
	"encoding/json"
	"os"
	"sync"
)

// Config holds application configuration and feature flags
type Config struct {
	// Feature flags
	Features Features `json:"features"`

	// Rendering parameters
	Rendering Rendering `json:"rendering"`
}

// Features contains feature flags for development
type Features struct {
	// CursorHighlight enables highlighting the cell under the cursor
	CursorHighlight bool `json:"cursor_highlight"`

	// WedgeHighlight enables the per-wedge highlight color inside the
	// hovered cell (hex grid only)
	WedgeHighlight bool `json:"wedge_highlight"`

	// SquareGrid selects the square tiling instead of the hex tiling
	SquareGrid bool `json:"square_grid"`
}

// Rendering contains rendering parameters
type Rendering struct {
	// GridScale is the lattice spacing in world units
	GridScale float64 `json:"grid_scale"`

	// LineWidth is the smoothstep falloff width of the cell borders,
	// in lattice units
	LineWidth float64 `json:"line_width"`

	// HighlightWidth is the falloff width used inside the hovered cell;
	// typically wider than LineWidth
	HighlightWidth float64 `json:"highlight_width"`

	// HighlightRadius is the cell-center match threshold for the cursor
	// highlight, in lattice units
	HighlightRadius float64 `json:"highlight_radius"`

	// Colors, RGBA in [0,1]
	BaseColor      [4]float64 `json:"base_color"`
	LineColor      [4]float64 `json:"line_color"`
	HighlightColor [4]float64 `json:"highlight_color"`
	WedgeColor     [4]float64 `json:"wedge_color"`
}

const (
	MinGridScale = 0.1
	MaxGridScale = 100.0
)

var (
	instance *Config
	once     sync.Once
	mu       sync.RWMutex
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Features: Features{
			CursorHighlight: true,
			WedgeHighlight:  true,
			SquareGrid:      false,
		},
		Rendering: Rendering{
			GridScale:       1.0,
			LineWidth:       0.04,
			HighlightWidth:  0.12,
			HighlightRadius: 0.1,
			BaseColor:       [4]float64{0.05, 0.07, 0.10, 0.85},
			LineColor:       [4]float64{0.35, 0.55, 0.75, 1.0},
			HighlightColor:  [4]float64{0.95, 0.75, 0.20, 1.0},
			WedgeColor:      [4]float64{1.0, 0.35, 0.25, 1.0},
		},
	}
}

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		instance = DefaultConfig()
		// Try to load from file
		if data, err := os.ReadFile("config.json"); err == nil {
			json.Unmarshal(data, instance)
		}
	})
	return instance
}

// Load loads configuration from a file
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		instance = DefaultConfig()
	}

	return json.Unmarshal(data, instance)
}

// Save saves configuration to a file
func Save(path string) error {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		instance = DefaultConfig()
	}

	data, err := json.MarshalIndent(instance, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetGridScale sets the lattice spacing, clamped to the valid range
func SetGridScale(scale float64) {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		instance = DefaultConfig()
	}

	instance.Rendering.GridScale = clampScale(scale)
}

// GetGridScale returns the current lattice spacing
func GetGridScale() float64 {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		return 1.0
	}
	return instance.Rendering.GridScale
}

// AdjustGridScale multiplies the lattice spacing by a factor
func AdjustGridScale(factor float64) float64 {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		instance = DefaultConfig()
	}

	instance.Rendering.GridScale = clampScale(instance.Rendering.GridScale * factor)
	return instance.Rendering.GridScale
}

// ToggleSquareGrid flips the tiling variant and returns the new value
func ToggleSquareGrid() bool {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		instance = DefaultConfig()
	}

	instance.Features.SquareGrid = !instance.Features.SquareGrid
	return instance.Features.SquareGrid
}

// ToggleCursorHighlight flips the cursor highlight and returns the new value
func ToggleCursorHighlight() bool {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		instance = DefaultConfig()
	}

	instance.Features.CursorHighlight = !instance.Features.CursorHighlight
	return instance.Features.CursorHighlight
}

func clampScale(scale float64) float64 {
	if scale < MinGridScale {
		return MinGridScale
	}
	if scale > MaxGridScale {
		return MaxGridScale
	}
	return scale
}
