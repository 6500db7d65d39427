package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Features.CursorHighlight {
		t.Error("cursor highlight should default on")
	}
	if cfg.Features.SquareGrid {
		t.Error("hex grid should be the default tiling")
	}
	if cfg.Rendering.GridScale <= 0 {
		t.Errorf("grid scale must be positive, got %v", cfg.Rendering.GridScale)
	}
	if cfg.Rendering.HighlightWidth <= cfg.Rendering.LineWidth {
		t.Errorf("highlight falloff (%v) should be wider than the line falloff (%v)",
			cfg.Rendering.HighlightWidth, cfg.Rendering.LineWidth)
	}
}

func TestGridScaleClamping(t *testing.T) {
	defer SetGridScale(DefaultConfig().Rendering.GridScale)

	SetGridScale(0.001)
	if got := GetGridScale(); got != MinGridScale {
		t.Errorf("GetGridScale() = %v after setting below minimum, want %v", got, MinGridScale)
	}

	SetGridScale(1e6)
	if got := GetGridScale(); got != MaxGridScale {
		t.Errorf("GetGridScale() = %v after setting above maximum, want %v", got, MaxGridScale)
	}

	SetGridScale(2.0)
	if got := AdjustGridScale(1.5); got != 3.0 {
		t.Errorf("AdjustGridScale(1.5) = %v, want 3.0", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	SetGridScale(4.25)
	defer SetGridScale(DefaultConfig().Rendering.GridScale)

	if err := Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	SetGridScale(1.0)
	if err := Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := GetGridScale(); got != 4.25 {
		t.Errorf("GetGridScale() = %v after reload, want 4.25", got)
	}
}

func TestToggles(t *testing.T) {
	square := ToggleSquareGrid()
	if ToggleSquareGrid() == square {
		t.Error("ToggleSquareGrid should alternate")
	}

	highlight := ToggleCursorHighlight()
	if ToggleCursorHighlight() == highlight {
		t.Error("ToggleCursorHighlight should alternate")
	}
}
