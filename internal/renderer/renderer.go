package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rajveermalviya/go-webgpu/wgpu"

	"gridviewer/internal/camera"
	"gridviewer/internal/config"
)

// ViewUniform matches the WGSL View struct byte for byte
type ViewUniform struct {
	Viewport  [4]uint32
	Proj      mgl32.Mat4
	InvProj   mgl32.Mat4
	View      mgl32.Mat4
	InvView   mgl32.Mat4
	CursorPos [2]float32
	_         [2]float32 // pad to 16-byte struct alignment
}

// GridParamsUniform matches the WGSL GridParams struct byte for byte
type GridParamsUniform struct {
	BaseColor       [4]float32
	LineColor       [4]float32
	HighlightColor  [4]float32
	WedgeColor      [4]float32
	Scale           float32
	LineWidth       float32
	HighlightWidth  float32
	HighlightRadius float32
	CursorHighlight float32
	WedgeHighlight  float32
	_               [2]float32
}

// Renderer draws the infinite ground-plane grid with WebGPU
type Renderer struct {
	device          *wgpu.Device
	queue           *wgpu.Queue
	surface         *wgpu.Surface
	adapter         *wgpu.Adapter
	swapChain       *wgpu.SwapChain
	swapChainFormat wgpu.TextureFormat
	bindGroupLayout *wgpu.BindGroupLayout
	hexPipeline     *wgpu.RenderPipeline
	squarePipeline  *wgpu.RenderPipeline

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	width  uint32
	height uint32
}

// NewRenderer creates a new WebGPU grid renderer
func NewRenderer(adapter *wgpu.Adapter, device *wgpu.Device, queue *wgpu.Queue, surface *wgpu.Surface, width, height uint32) (*Renderer, error) {
	r := &Renderer{
		adapter: adapter,
		device:  device,
		queue:   queue,
		surface: surface,
		width:   width,
		height:  height,
	}

	if err := r.init(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Renderer) init() error {
	// Get preferred format
	r.swapChainFormat = r.surface.GetPreferredFormat(r.adapter)

	// Create swap chain
	var err error
	r.swapChain, err = r.device.CreateSwapChain(r.surface, &wgpu.SwapChainDescriptor{
		Usage:       wgpu.TextureUsage_RenderAttachment,
		Format:      r.swapChainFormat,
		Width:       r.width,
		Height:      r.height,
		PresentMode: wgpu.PresentMode_Fifo,
	})
	if err != nil {
		return fmt.Errorf("swap chain creation failed: %w", err)
	}

	if err := r.createDepthTexture(); err != nil {
		return fmt.Errorf("depth texture creation failed: %w", err)
	}

	// Create bind group layout: View at binding 0, GridParams at binding 1
	r.bindGroupLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "grid_bind_group_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStage_Vertex | wgpu.ShaderStage_Fragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingType_Uniform},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStage_Vertex | wgpu.ShaderStage_Fragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingType_Uniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("bind group layout creation failed: %w", err)
	}

	// Create pipeline layout
	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "grid_pipeline_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.bindGroupLayout},
	})
	if err != nil {
		return fmt.Errorf("pipeline layout creation failed: %w", err)
	}
	defer pipelineLayout.Release()

	r.hexPipeline, err = r.createPipeline(pipelineLayout, "hex_grid", HexGridShader)
	if err != nil {
		return fmt.Errorf("hex pipeline creation failed: %w", err)
	}

	r.squarePipeline, err = r.createPipeline(pipelineLayout, "square_grid", SquareGridShader)
	if err != nil {
		return fmt.Errorf("square pipeline creation failed: %w", err)
	}

	return nil
}

// createPipeline builds a render pipeline for one grid variant: a 4-vertex
// triangle strip with no vertex buffers, alpha blending and depth writes.
func (r *Renderer) createPipeline(layout *wgpu.PipelineLayout, label, shaderCode string) (*wgpu.RenderPipeline, error) {
	shader, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label + "_shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaderCode},
	})
	if err != nil {
		return nil, fmt.Errorf("shader creation failed: %w", err)
	}
	defer shader.Release()

	return r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label + "_pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format: r.swapChainFormat,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactor_SrcAlpha,
						DstFactor: wgpu.BlendFactor_OneMinusSrcAlpha,
						Operation: wgpu.BlendOperation_Add,
					},
					Alpha: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactor_One,
						DstFactor: wgpu.BlendFactor_OneMinusSrcAlpha,
						Operation: wgpu.BlendOperation_Add,
					},
				},
				WriteMask: wgpu.ColorWriteMask_All,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopology_TriangleStrip,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormat_Depth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunction_Less,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunction_Always,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunction_Always,
			},
			StencilReadMask:  0xFFFFFFFF,
			StencilWriteMask: 0xFFFFFFFF,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}

func (r *Renderer) createDepthTexture() error {
	texture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "depth_texture",
		Size: wgpu.Extent3D{
			Width:              r.width,
			Height:             r.height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension_2D,
		Format:        wgpu.TextureFormat_Depth24Plus,
		Usage:         wgpu.TextureUsage_RenderAttachment,
	})
	if err != nil {
		return err
	}

	view, err := texture.CreateView(&wgpu.TextureViewDescriptor{
		Format:          wgpu.TextureFormat_Depth24Plus,
		Dimension:       wgpu.TextureViewDimension_2D,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: 1,
		Aspect:          wgpu.TextureAspect_All,
	})
	if err != nil {
		texture.Release()
		return err
	}

	r.depthTexture = texture
	r.depthView = view
	return nil
}

// buildViewUniform assembles the View uniform for the current frame. When
// the cursor is off the plane the highlight is suppressed by the caller via
// the params uniform; the stale cursor position is harmless.
func (r *Renderer) buildViewUniform(cam *camera.Camera, cursor mgl32.Vec2) ViewUniform {
	proj, invProj, view, invView := cam.Matrices()
	return ViewUniform{
		Viewport:  [4]uint32{0, 0, r.width, r.height},
		Proj:      proj,
		InvProj:   invProj,
		View:      view,
		InvView:   invView,
		CursorPos: [2]float32{cursor.X(), cursor.Y()},
	}
}

func buildParamsUniform(cfg *config.Config, cursorValid bool) GridParamsUniform {
	boolToFloat := func(b bool) float32 {
		if b {
			return 1.0
		}
		return 0.0
	}

	rend := cfg.Rendering
	toColor := func(c [4]float64) [4]float32 {
		return [4]float32{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
	}

	return GridParamsUniform{
		BaseColor:       toColor(rend.BaseColor),
		LineColor:       toColor(rend.LineColor),
		HighlightColor:  toColor(rend.HighlightColor),
		WedgeColor:      toColor(rend.WedgeColor),
		Scale:           float32(rend.GridScale),
		LineWidth:       float32(rend.LineWidth),
		HighlightWidth:  float32(rend.HighlightWidth),
		HighlightRadius: float32(rend.HighlightRadius),
		CursorHighlight: boolToFloat(cfg.Features.CursorHighlight && cursorValid),
		WedgeHighlight:  boolToFloat(cfg.Features.WedgeHighlight),
	}
}

// Render draws the grid. cursor is the cursor position on the ground plane;
// cursorValid is false while the cursor ray misses the plane, which
// suppresses the highlight for the frame.
func (r *Renderer) Render(cam *camera.Camera, cursor mgl32.Vec2, cursorValid bool) error {
	view, err := r.swapChain.GetCurrentTextureView()
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := r.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{})
	if err != nil {
		return err
	}
	defer encoder.Release()

	cfg := config.Get()

	viewUniform := r.buildViewUniform(cam, cursor)
	viewBuffer, err := r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "view_uniform",
		Contents: wgpu.ToBytes([]ViewUniform{viewUniform}),
		Usage:    wgpu.BufferUsage_Uniform,
	})
	if err != nil {
		return err
	}
	defer viewBuffer.Release()

	params := buildParamsUniform(cfg, cursorValid)
	paramsBuffer, err := r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "grid_params_uniform",
		Contents: wgpu.ToBytes([]GridParamsUniform{params}),
		Usage:    wgpu.BufferUsage_Uniform,
	})
	if err != nil {
		return err
	}
	defer paramsBuffer.Release()

	bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "grid_bind_group",
		Layout: r.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: viewBuffer, Size: uint64(unsafe.Sizeof(ViewUniform{}))},
			{Binding: 1, Buffer: paramsBuffer, Size: uint64(unsafe.Sizeof(GridParamsUniform{}))},
		},
	})
	if err != nil {
		return err
	}
	defer bindGroup.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOp_Clear,
			StoreOp:    wgpu.StoreOp_Store,
			ClearValue: wgpu.Color{R: 0.012, G: 0.015, B: 0.022, A: 1.0},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthView,
			DepthLoadOp:     wgpu.LoadOp_Clear,
			DepthStoreOp:    wgpu.StoreOp_Store,
			DepthClearValue: 1.0,
		},
	})

	pipeline := r.hexPipeline
	if cfg.Features.SquareGrid {
		pipeline = r.squarePipeline
	}
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.Draw(4, 1, 0, 0)
	pass.End()

	cmdBuffer, err := encoder.Finish(&wgpu.CommandBufferDescriptor{})
	if err != nil {
		return err
	}
	defer cmdBuffer.Release()

	r.queue.Submit(cmdBuffer)
	r.swapChain.Present()

	return nil
}

// Resize handles window resize
func (r *Renderer) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	r.width = width
	r.height = height

	if r.swapChain != nil {
		r.swapChain.Release()
	}

	var err error
	r.swapChain, err = r.device.CreateSwapChain(r.surface, &wgpu.SwapChainDescriptor{
		Usage:       wgpu.TextureUsage_RenderAttachment,
		Format:      r.swapChainFormat,
		Width:       width,
		Height:      height,
		PresentMode: wgpu.PresentMode_Fifo,
	})
	if err != nil {
		fmt.Printf("Failed to recreate swap chain: %v\n", err)
		return
	}

	if r.depthView != nil {
		r.depthView.Release()
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
	}
	if err := r.createDepthTexture(); err != nil {
		fmt.Printf("Failed to recreate depth texture: %v\n", err)
	}
}

// Release frees all GPU resources
func (r *Renderer) Release() {
	if r.depthView != nil {
		r.depthView.Release()
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
	}
	r.bindGroupLayout.Release()
	r.hexPipeline.Release()
	r.squarePipeline.Release()
	if r.swapChain != nil {
		r.swapChain.Release()
	}
}
