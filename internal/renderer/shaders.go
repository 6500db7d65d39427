package renderer

// The grid is drawn as a full-screen triangle-strip quad. The vertex stage
// reconstructs the world-space view ray for each corner by unprojecting the
// corner at two NDC depths; the fragment stage intersects the interpolated
// ray with the ground plane y=0, writes the reprojected depth of the
// intersection, and shades the cell lattice around it.
//
// Both tiling variants share the prelude and the entry points; they differ
// only in the cell_at function resolving a plane point to its lattice cell.

// shaderPrelude holds the uniform declarations, ray reconstruction and the
// helpers common to both tilings.
const shaderPrelude = `
struct View {
    // viewport origin and size in pixels (x, y, width, height)
    viewport: vec4<u32>,
    // proj maps camera space to clip space, view maps world to camera space;
    // inv_proj and inv_view are their true inverses
    proj: mat4x4<f32>,
    inv_proj: mat4x4<f32>,
    view: mat4x4<f32>,
    inv_view: mat4x4<f32>,
    // cursor position on the ground plane, world xz
    cursor_pos: vec2<f32>,
}

struct GridParams {
    base_color: vec4<f32>,
    line_color: vec4<f32>,
    highlight_color: vec4<f32>,
    wedge_color: vec4<f32>,
    // lattice spacing in world units
    scale: f32,
    // smoothstep falloff widths, lattice units
    line_width: f32,
    highlight_width: f32,
    // cell-center match threshold for the cursor highlight
    highlight_radius: f32,
    // feature toggles, 0.0 or 1.0
    cursor_highlight: f32,
    wedge_highlight: f32,
    _pad: vec2<f32>,
}

@group(0) @binding(0) var<uniform> view: View;
@group(0) @binding(1) var<uniform> params: GridParams;

const PI: f32 = 3.14159265358979;
const SQRT3: f32 = 1.7320508075688772;

// NDC depths of the two ray samples. Depth 0 is the near plane, 1 the far
// plane; the near sample sits just off the near plane.
const NEAR_POINT_Z: f32 = 0.00001;
const FAR_POINT_Z: f32 = 1.0;

struct CellCoords {
    // offset of the query point from the nearest cell center
    coords: vec2<f32>,
    // 0 on the cell boundary, 0.5 at the center; larger = further inside
    edge_dist: f32,
    // 60-degree sector of coords, 0..5 (hex tiling; 0 for squares)
    wedge: f32,
}

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) near_point: vec3<f32>,
    @location(1) far_point: vec3<f32>,
    // cursor cell center and wedge, constant across the quad
    @location(2) cursor_cell: vec2<f32>,
    @location(3) cursor_wedge: f32,
}

struct FragmentOutput {
    @location(0) color: vec4<f32>,
    @builtin(frag_depth) depth: f32,
}

// Euclidean modulo: the remainder is in [0, m) regardless of the sign of p.
fn mod_euclid(p: vec2<f32>, m: vec2<f32>) -> vec2<f32> {
    return p - m * floor(p / m);
}

fn corner_position(index: u32) -> vec2<f32> {
    var corners = array<vec2<f32>, 4>(
        vec2<f32>(-1.0, -1.0),
        vec2<f32>(1.0, -1.0),
        vec2<f32>(-1.0, 1.0),
        vec2<f32>(1.0, 1.0),
    );
    return corners[index];
}

// unproject maps an NDC point back to world space through the inverse
// camera transforms, with perspective division.
fn unproject(ndc: vec3<f32>) -> vec3<f32> {
    let p = view.inv_view * view.inv_proj * vec4<f32>(ndc, 1.0);
    return p.xyz / p.w;
}
`

// hexCellFunctions resolves plane points against the pointy-top hex tiling
// with basis (1, 0), (0.5, SQRT3/2): the cell centers form two interleaved
// rectangular sub-lattices of period (1, SQRT3), one shifted by half a
// period. The nearest center is the closer of the two candidates.
const hexCellFunctions = `
fn hex_boundary_dist(p: vec2<f32>) -> f32 {
    let q = abs(p);
    return max(q.x, dot(q, normalize(vec2<f32>(1.0, SQRT3))));
}

// wedge_index quantizes the polar angle of an offset into six 60-degree
// sectors centered on the edge normals, so each sector covers exactly one
// triangular wedge of the hexagon.
fn wedge_index(p: vec2<f32>) -> f32 {
    let w = floor((atan2(p.y, p.x) + PI / 6.0) / (PI / 3.0));
    return w - 6.0 * floor(w / 6.0);
}

fn cell_at(uv: vec2<f32>) -> CellCoords {
    let period = vec2<f32>(1.0, SQRT3);
    let half = period * 0.5;
    let a = mod_euclid(uv, period) - half;
    let b = mod_euclid(uv - half, period) - half;

    var offset = a;
    if (dot(b, b) < dot(a, a)) {
        offset = b;
    }

    var cell: CellCoords;
    cell.coords = offset;
    cell.edge_dist = 0.5 - hex_boundary_dist(offset);
    cell.wedge = wedge_index(offset);
    return cell;
}
`

// squareCellFunctions resolves plane points against the unit-square tiling.
// Candidate centers live on the half-integer and integer lattices; the
// distance field is the Chebyshev distance to the chosen center.
const squareCellFunctions = `
fn cell_at(uv: vec2<f32>) -> CellCoords {
    let a = fract(uv) - 0.5;
    let b = fract(uv - 0.5) - 0.5;

    var offset = a;
    if (dot(b, b) < dot(a, a)) {
        offset = b;
    }

    var cell: CellCoords;
    cell.coords = offset;
    cell.edge_dist = 0.5 - max(abs(offset.x), abs(offset.y));
    cell.wedge = 0.0;
    return cell;
}
`

// shaderMain holds the two entry points shared by both variants.
const shaderMain = `
@vertex
fn vs_main(@builtin(vertex_index) index: u32) -> VertexOutput {
    let corner = corner_position(index);

    var out: VertexOutput;
    out.clip_position = vec4<f32>(corner, 0.0, 1.0);
    out.near_point = unproject(vec3<f32>(corner, NEAR_POINT_Z));
    out.far_point = unproject(vec3<f32>(corner, FAR_POINT_Z));

    // Redundant across the four corners; the rasterizer interpolates a
    // constant.
    let cursor_uv = view.cursor_pos / params.scale;
    let cursor = cell_at(cursor_uv);
    out.cursor_cell = cursor_uv - cursor.coords;
    out.cursor_wedge = cursor.wedge;

    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> FragmentOutput {
    // Parametric intersection of the interpolated ray with the plane y=0.
    let t = -in.near_point.y / (in.far_point.y - in.near_point.y);
    if (t <= 0.0) {
        // Behind the camera: no color, no depth write.
        discard;
    }

    let pos = in.near_point + t * (in.far_point - in.near_point);

    var out: FragmentOutput;

    // Reproject the intersection so the flat grid occludes and is occluded
    // at its true distance.
    let clip = view.proj * view.view * vec4<f32>(pos, 1.0);
    out.depth = clip.z / clip.w;

    let uv = pos.xz / params.scale;
    let cell = cell_at(uv);

    var line_color = params.line_color;
    var width = params.line_width;

    if (params.cursor_highlight > 0.5
        && distance(uv - cell.coords, in.cursor_cell) < params.highlight_radius) {
        line_color = params.highlight_color;
        width = params.highlight_width;
        if (params.wedge_highlight > 0.5 && cell.wedge == round(in.cursor_wedge)) {
            line_color = params.wedge_color;
        }
    }

    let coverage = smoothstep(0.0, width, cell.edge_dist);
    out.color = mix(line_color, params.base_color, coverage);
    return out;
}
`

// HexGridShader renders the hexagonal ground-plane grid.
const HexGridShader = shaderPrelude + hexCellFunctions + shaderMain

// SquareGridShader renders the square ground-plane grid.
const SquareGridShader = shaderPrelude + squareCellFunctions + shaderMain
