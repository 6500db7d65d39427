package app

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rajveermalviya/go-webgpu/wgpu"

	"gridviewer/internal/camera"
	"gridviewer/internal/config"
	"gridviewer/internal/renderer"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720

	DefaultYaw      = 0.6
	DefaultPitch    = 0.7
	DefaultDistance = 12.0

	KeyPanSpeed   = 10.0
	KeyOrbitSpeed = 0.02
)

type App struct {
	window   *glfw.Window
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	renderer *renderer.Renderer
	camera   *camera.Camera

	keys   map[glfw.Key]bool
	keysMu sync.RWMutex

	// cursor position on the ground plane, tracked from cursor motion
	cursorPlane mgl32.Vec2
	cursorValid bool

	width, height int
}

func New() (*App, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("GLFW init failed: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.CocoaRetinaFramebuffer, glfw.True)

	window, err := glfw.CreateWindow(DefaultWidth, DefaultHeight, "Grid Viewer", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("window creation failed: %w", err)
	}

	app := &App{
		window: window,
		width:  DefaultWidth,
		height: DefaultHeight,
		keys:   make(map[glfw.Key]bool),
	}

	if err := app.initWebGPU(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, err
	}

	app.camera = camera.NewCamera(mgl32.Vec3{0, 0, 0}, DefaultYaw, DefaultPitch, DefaultDistance, DefaultWidth, DefaultHeight)

	app.renderer, err = renderer.NewRenderer(app.adapter, app.device, app.queue, app.surface, uint32(DefaultWidth), uint32(DefaultHeight))
	if err != nil {
		return nil, fmt.Errorf("renderer creation failed: %w", err)
	}

	app.setupCallbacks()

	return app, nil
}

func (app *App) initWebGPU() error {
	app.instance = wgpu.CreateInstance(&wgpu.InstanceDescriptor{
		Backends: wgpu.InstanceBackend_Primary,
	})
	if app.instance == nil {
		return fmt.Errorf("failed to create WebGPU instance")
	}

	// Create surface
	app.surface = CreateSurface(app.instance, app.window)
	if app.surface == nil {
		return fmt.Errorf("surface creation failed")
	}

	// Request adapter - try with surface first, then without
	var err error
	app.adapter, err = app.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface:    app.surface,
		PowerPreference:      wgpu.PowerPreference_HighPerformance,
		ForceFallbackAdapter: false,
	})
	if err != nil {
		fmt.Println("Trying adapter without surface constraint...")
		app.adapter, err = app.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
			PowerPreference: wgpu.PowerPreference_HighPerformance,
		})
		if err != nil {
			return fmt.Errorf("adapter request failed: %w", err)
		}
	}

	props := app.adapter.GetProperties()
	fmt.Printf("GPU: %s (%s)\n", props.Name, props.DriverDescription)

	app.device, err = app.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "GridViewerDevice",
	})
	if err != nil {
		return fmt.Errorf("device request failed: %w", err)
	}

	app.queue = app.device.GetQueue()
	return nil
}

func (app *App) setupCallbacks() {
	app.window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		app.width = width
		app.height = height
		app.camera.SetViewport(width, height)
		app.renderer.Resize(uint32(width), uint32(height))
	})

	app.window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		x, y := w.GetCursorPos()
		switch button {
		case glfw.MouseButtonLeft:
			if action == glfw.Press {
				app.camera.StartDrag(x, y)
			} else {
				app.camera.EndDrag()
			}
		case glfw.MouseButtonRight:
			if action == glfw.Press {
				app.camera.StartOrbit(x, y)
			} else {
				app.camera.EndOrbit()
			}
		}
	})

	app.window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		if app.camera.IsDragging() {
			app.camera.Drag(x, y)
		}
		if app.camera.IsOrbiting() {
			app.camera.OrbitDrag(x, y)
		}
		app.updateCursor(x, y)
	})

	app.window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		if yoff > 0 {
			app.camera.Zoom(1.0 / 1.1)
		} else if yoff < 0 {
			app.camera.Zoom(1.1)
		}
		x, y := w.GetCursorPos()
		app.updateCursor(x, y)
	})

	app.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		app.keysMu.Lock()
		if action == glfw.Press {
			app.keys[key] = true
		} else if action == glfw.Release {
			app.keys[key] = false
		}
		app.keysMu.Unlock()

		// Handle single-press actions (not held)
		if action == glfw.Press {
			switch key {
			case glfw.KeyEscape:
				w.SetShouldClose(true)
			case glfw.KeyG:
				if config.ToggleSquareGrid() {
					fmt.Println("Tiling: square")
				} else {
					fmt.Println("Tiling: hex")
				}
			case glfw.KeyH:
				fmt.Printf("Cursor highlight: %v\n", config.ToggleCursorHighlight())
			case glfw.KeyMinus:
				fmt.Printf("Grid scale: %.2f\n", config.AdjustGridScale(1.0/1.25))
			case glfw.KeyEqual:
				fmt.Printf("Grid scale: %.2f\n", config.AdjustGridScale(1.25))
			}
		}
	})
}

// updateCursor reprojects the cursor onto the ground plane. A miss (looking
// above the horizon) keeps the last plane position but marks it invalid so
// the highlight is suppressed.
func (app *App) updateCursor(x, y float64) {
	if p, ok := app.camera.ScreenToPlane(x, y); ok {
		app.cursorPlane = p
		app.cursorValid = true
	} else {
		app.cursorValid = false
	}
}

func (app *App) processInput() {
	app.keysMu.RLock()
	defer app.keysMu.RUnlock()

	panX, panY := 0.0, 0.0

	if app.keys[glfw.KeyW] || app.keys[glfw.KeyUp] {
		panY += KeyPanSpeed
	}
	if app.keys[glfw.KeyS] || app.keys[glfw.KeyDown] {
		panY -= KeyPanSpeed
	}
	if app.keys[glfw.KeyA] || app.keys[glfw.KeyLeft] {
		panX -= KeyPanSpeed
	}
	if app.keys[glfw.KeyD] || app.keys[glfw.KeyRight] {
		panX += KeyPanSpeed
	}

	if panX != 0 || panY != 0 {
		app.camera.Pan(panX, panY)
	}

	if app.keys[glfw.KeyQ] {
		app.camera.Orbit(-KeyOrbitSpeed, 0)
	}
	if app.keys[glfw.KeyE] {
		app.camera.Orbit(KeyOrbitSpeed, 0)
	}
}

func (app *App) Run() error {
	lastTime := time.Now()
	frames := 0

	for !app.window.ShouldClose() {
		glfw.PollEvents()
		app.processInput()

		if err := app.renderer.Render(app.camera, app.cursorPlane, app.cursorValid); err != nil {
			fmt.Printf("Render error: %v\n", err)
		}

		frames++
		if time.Since(lastTime) >= time.Second {
			app.window.SetTitle(fmt.Sprintf("Grid Viewer | Scale: %.2f | FPS: %d", config.GetGridScale(), frames))
			frames = 0
			lastTime = time.Now()
		}
	}

	return nil
}

func (app *App) Cleanup() {
	if app.renderer != nil {
		app.renderer.Release()
	}
	if app.queue != nil {
		app.queue.Release()
	}
	if app.device != nil {
		app.device.Release()
	}
	if app.adapter != nil {
		app.adapter.Release()
	}
	if app.surface != nil {
		app.surface.Release()
	}
	if app.instance != nil {
		app.instance.Release()
	}
	if app.window != nil {
		app.window.Destroy()
	}
	glfw.Terminate()
}
