package renderer

import (
	"strings"
	"testing"
	"unsafe"

	"gridviewer/internal/config"
)

// The WGSL uniform structs are mirrored byte for byte by the Go structs;
// a size mismatch corrupts every matrix silently, so pin the layouts.
func TestUniformLayouts(t *testing.T) {
	if got := unsafe.Sizeof(ViewUniform{}); got != 288 {
		t.Errorf("ViewUniform size = %d, want 288 (vec4<u32> + 4 mat4x4 + vec2 + pad)", got)
	}
	if got := unsafe.Offsetof(ViewUniform{}.Proj); got != 16 {
		t.Errorf("ViewUniform.Proj offset = %d, want 16", got)
	}
	if got := unsafe.Offsetof(ViewUniform{}.CursorPos); got != 272 {
		t.Errorf("ViewUniform.CursorPos offset = %d, want 272", got)
	}

	if got := unsafe.Sizeof(GridParamsUniform{}); got != 96 {
		t.Errorf("GridParamsUniform size = %d, want 96", got)
	}
	if got := unsafe.Offsetof(GridParamsUniform{}.Scale); got != 64 {
		t.Errorf("GridParamsUniform.Scale offset = %d, want 64", got)
	}
}

func TestShaderVariants(t *testing.T) {
	for _, tt := range []struct {
		name   string
		source string
		cell   string
	}{
		{"hex", HexGridShader, "hex_boundary_dist"},
		{"square", SquareGridShader, "fract(uv)"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			for _, needed := range []string{
				"@vertex", "@fragment", "fn vs_main", "fn fs_main",
				"fn cell_at", "fn mod_euclid", "fn unproject",
				"@builtin(frag_depth)", "discard", tt.cell,
			} {
				if !strings.Contains(tt.source, needed) {
					t.Errorf("%s shader missing %q", tt.name, needed)
				}
			}
		})
	}
}

// The reject branch must run before any output is assigned, so a behind-
// camera fragment writes neither color nor depth.
func TestRejectBeforeOutput(t *testing.T) {
	discardAt := strings.Index(shaderMain, "discard")
	depthAt := strings.Index(shaderMain, "out.depth")
	if discardAt == -1 || depthAt == -1 {
		t.Fatal("shader main lost its reject or depth-write path")
	}
	if discardAt > depthAt {
		t.Error("reject path must precede the depth write")
	}
}

func TestBuildParamsUniform(t *testing.T) {
	cfg := config.DefaultConfig()

	p := buildParamsUniform(cfg, true)
	if p.CursorHighlight != 1.0 {
		t.Error("cursor highlight should be enabled with a valid cursor")
	}
	if p.Scale != float32(cfg.Rendering.GridScale) {
		t.Errorf("Scale = %v, want %v", p.Scale, cfg.Rendering.GridScale)
	}

	// An off-plane cursor suppresses the highlight for the frame.
	p = buildParamsUniform(cfg, false)
	if p.CursorHighlight != 0.0 {
		t.Error("cursor highlight must be suppressed while the cursor is off the plane")
	}

	cfg.Features.CursorHighlight = false
	p = buildParamsUniform(cfg, true)
	if p.CursorHighlight != 0.0 {
		t.Error("cursor highlight must honor the feature flag")
	}
}
