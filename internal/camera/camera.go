package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinDistance = 1.0
	MaxDistance = 200.0

	// Pitch is kept strictly above the horizon so the view ray always
	// crosses the ground plane somewhere in front of the camera.
	MinPitch = 0.05
	MaxPitch = math.Pi/2 - 0.05

	DefaultFovY = math.Pi / 4
	NearClip    = 0.1
	FarClip     = 1000.0

	// NDC depths used to reconstruct the view ray. The near sample sits
	// just off the near plane; 0 exactly would also work with a finite
	// projection but the small offset matches the reference technique.
	NearPointZ = 0.00001
	FarPointZ  = 1.0
)

// Camera is an orbit camera circling a target point on the ground plane.
// It owns the projection/view matrices and their inverses; the renderer
// uploads them verbatim, so keeping them mutually consistent is this
// package's invariant.
type Camera struct {
	// Target is the orbit center, on the y=0 plane
	Target mgl32.Vec3

	// Orbit angles in radians and distance from the target
	Yaw      float64
	Pitch    float64
	Distance float64

	// Viewport dimensions in pixels
	ViewportWidth  int
	ViewportHeight int

	FovY float32

	// State tracking
	isDragging bool
	isOrbiting bool
	dragAnchor mgl32.Vec2
	lastOrbitX float64
	lastOrbitY float64
}

// NewCamera creates a camera orbiting the given target
func NewCamera(target mgl32.Vec3, yaw, pitch, distance float64, width, height int) *Camera {
	c := &Camera{
		Target:         mgl32.Vec3{target.X(), 0, target.Z()},
		Yaw:            yaw,
		Pitch:          pitch,
		Distance:       distance,
		ViewportWidth:  width,
		ViewportHeight: height,
		FovY:           DefaultFovY,
	}
	c.clamp()
	return c
}

// SetViewport updates the viewport dimensions
func (c *Camera) SetViewport(width, height int) {
	c.ViewportWidth = width
	c.ViewportHeight = height
}

// Eye returns the camera position in world space
func (c *Camera) Eye() mgl32.Vec3 {
	offset := mgl32.Vec3{
		float32(math.Cos(c.Pitch) * math.Sin(c.Yaw)),
		float32(math.Sin(c.Pitch)),
		float32(math.Cos(c.Pitch) * math.Cos(c.Yaw)),
	}
	return c.Target.Add(offset.Mul(float32(c.Distance)))
}

// ViewMatrix returns the world-to-camera transform
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns a perspective projection mapping camera space to
// clip space with NDC depth in [0,1] (near plane at 0, far plane at 1)
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	aspect := float32(1)
	if c.ViewportHeight > 0 {
		aspect = float32(c.ViewportWidth) / float32(c.ViewportHeight)
	}
	return perspectiveZO(c.FovY, aspect, NearClip, FarClip)
}

// Matrices returns projection, inverse projection, view and inverse view in
// one call, ready for uniform upload
func (c *Camera) Matrices() (proj, invProj, view, invView mgl32.Mat4) {
	proj = c.ProjectionMatrix()
	view = c.ViewMatrix()
	return proj, proj.Inv(), view, view.Inv()
}

// perspectiveZO builds a right-handed perspective matrix with zero-to-one
// depth, the wgpu clip-space convention. mgl32.Perspective targets the GL
// [-1,1] depth range and would fold half the depth output outside the
// wgpu clip volume.
func perspectiveZO(fovy, aspect, near, far float32) mgl32.Mat4 {
	f := float32(1.0 / math.Tan(float64(fovy)/2))
	return mgl32.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, far / (near - far), -1,
		0, 0, near * far / (near - far), 0,
	}
}

// unproject maps an NDC point back to world space through the inverse
// projection and inverse view transforms, with perspective division
func (c *Camera) unproject(ndc mgl32.Vec3) mgl32.Vec3 {
	p := c.ViewMatrix().Inv().Mul4(c.ProjectionMatrix().Inv()).Mul4x1(ndc.Vec4(1))
	return p.Vec3().Mul(1 / p.W())
}

// ScreenToPlane intersects the view ray through a screen pixel with the
// ground plane y=0. Returns the plane point in world xz coordinates, or
// ok=false when the intersection lies behind the camera. Mirrors the
// fragment stage: degenerate rays (exactly parallel to the plane) are not
// guarded and propagate as non-finite coordinates.
func (c *Camera) ScreenToPlane(x, y float64) (mgl32.Vec2, bool) {
	ndcX := float32(2*x/float64(c.ViewportWidth) - 1)
	ndcY := float32(1 - 2*y/float64(c.ViewportHeight))

	near := c.unproject(mgl32.Vec3{ndcX, ndcY, NearPointZ})
	far := c.unproject(mgl32.Vec3{ndcX, ndcY, FarPointZ})

	t := -near.Y() / (far.Y() - near.Y())
	if t <= 0 {
		return mgl32.Vec2{}, false
	}

	hit := near.Add(far.Sub(near).Mul(t))
	return mgl32.Vec2{hit.X(), hit.Z()}, true
}

// Orbit rotates the camera around the target
func (c *Camera) Orbit(deltaYaw, deltaPitch float64) {
	c.Yaw += deltaYaw
	c.Pitch += deltaPitch
	c.clamp()
}

// Zoom scales the orbit distance by a factor (>1 zooms out)
func (c *Camera) Zoom(factor float64) {
	c.Distance *= factor
	c.clamp()
}

// StartDrag begins a pan drag, anchoring the plane point under the cursor
func (c *Camera) StartDrag(x, y float64) {
	if anchor, ok := c.ScreenToPlane(x, y); ok {
		c.isDragging = true
		c.dragAnchor = anchor
	}
}

// Drag moves the target so the anchored plane point stays under the cursor.
// Translating the camera translates the intersection by the same amount, so
// a single correction step is exact.
func (c *Camera) Drag(x, y float64) {
	if !c.isDragging {
		return
	}
	p, ok := c.ScreenToPlane(x, y)
	if !ok {
		return
	}
	delta := c.dragAnchor.Sub(p)
	c.Target = c.Target.Add(mgl32.Vec3{delta.X(), 0, delta.Y()})
}

// EndDrag ends a pan drag
func (c *Camera) EndDrag() {
	c.isDragging = false
}

// IsDragging returns whether a pan drag is in progress
func (c *Camera) IsDragging() bool {
	return c.isDragging
}

// StartOrbit begins an orbit drag
func (c *Camera) StartOrbit(x, y float64) {
	c.isOrbiting = true
	c.lastOrbitX = x
	c.lastOrbitY = y
}

// OrbitDrag continues an orbit drag
func (c *Camera) OrbitDrag(x, y float64) {
	if !c.isOrbiting {
		return
	}
	c.Orbit((x-c.lastOrbitX)*0.005, (y-c.lastOrbitY)*0.005)
	c.lastOrbitX = x
	c.lastOrbitY = y
}

// EndOrbit ends an orbit drag
func (c *Camera) EndOrbit() {
	c.isOrbiting = false
}

// IsOrbiting returns whether an orbit drag is in progress
func (c *Camera) IsOrbiting() bool {
	return c.isOrbiting
}

// Pan moves the target in view-relative plane directions
func (c *Camera) Pan(deltaX, deltaY float64) {
	forward := mgl32.Vec3{
		float32(-math.Sin(c.Yaw)),
		0,
		float32(-math.Cos(c.Yaw)),
	}
	right := mgl32.Vec3{forward.Z(), 0, -forward.X()}

	step := float32(c.Distance) * 0.002
	c.Target = c.Target.
		Add(right.Mul(float32(deltaX) * step)).
		Add(forward.Mul(float32(deltaY) * step))
}

func (c *Camera) clamp() {
	if c.Pitch < MinPitch {
		c.Pitch = MinPitch
	}
	if c.Pitch > MaxPitch {
		c.Pitch = MaxPitch
	}
	if c.Distance < MinDistance {
		c.Distance = MinDistance
	}
	if c.Distance > MaxDistance {
		c.Distance = MaxDistance
	}
}
