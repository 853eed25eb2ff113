// Package app hosts a Painter in a GLFW window drawn with WebGPU.
package app

import (
	"fmt"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/painter"
	"github.com/gekko3d/painter/core"
	"github.com/gekko3d/painter/gpu"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type App struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	Painter  *painter.Painter
	Renderer *gpu.Renderer

	log painter.Logger

	LastRenderTime float64
	FrameCount     int
	FPS            float64
	FPSTime        float64
}

func NewApp(window *glfw.Window, p *painter.Painter) *App {
	return &App{
		Window:  window,
		Painter: p,
		log:     p.Logger(),
	}
}

func (a *App) Init() error {
	a.Instance = wgpu.CreateInstance(nil)
	a.Surface = a.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(a.Window))

	adapter, err := a.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: a.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	a.Adapter = adapter

	a.Device, err = adapter.RequestDevice(nil)
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}

	width, height := a.Window.GetFramebufferSize()
	caps := a.Surface.GetCapabilities(adapter)
	a.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	a.Surface.Configure(adapter, a.Device, a.Config)

	a.Renderer, err = gpu.NewRenderer(adapter, a.Device, a.Surface, a.Config, a.log)
	if err != nil {
		return err
	}
	bg := a.Painter.Config().Window.Background
	a.Renderer.Background = wgpu.Color{R: bg[0], G: bg[1], B: bg[2], A: bg[3]}

	a.Painter.Resize(width, height)
	a.installCallbacks()
	a.log.Infof("surface %dx%d format %v", width, height, a.Config.Format)
	return nil
}

func (a *App) installCallbacks() {
	a.Window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		a.Resize(width, height)
	})

	a.Window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if err := a.Painter.PointerMove(float32(xpos), float32(ypos)); err != nil {
			a.log.Debugf("pointer move: %v", err)
		}
	})

	a.Window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		a.HandleClick(button, action)
	})

	a.Window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		a.Painter.Wheel(WheelDelta(yoff))
	})

	a.Window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyHome, glfw.KeyR:
			a.Painter.ResetView()
		}
	})

	a.Window.SetRefreshCallback(func(w *glfw.Window) {
		a.Painter.Invalidate()
	})
}

func (a *App) HandleClick(button glfw.MouseButton, action glfw.Action) {
	b, ok := MapButton(button)
	if !ok {
		return
	}
	switch action {
	case glfw.Press:
		x, y := a.Window.GetCursorPos()
		a.Painter.PointerDown(b, float32(x), float32(y))
	case glfw.Release:
		a.Painter.PointerUp(b)
	}
}

func (a *App) Resize(w, h int) {
	if w > 0 && h > 0 {
		a.Renderer.Resize(w, h)
		a.Painter.Resize(w, h)
	}
}

// Render draws a frame. Frames with errors still present whatever could be
// drawn.
func (a *App) Render() {
	stats := a.Painter.Render(a.Renderer)
	if err := stats.Err(); err != nil {
		a.log.Debugf("frame: drawn %d, skipped %d: %v", stats.Drawn, len(stats.Skipped), err)
	}

	now := glfw.GetTime()
	if a.LastRenderTime > 0 {
		a.FrameCount++
		a.FPSTime += now - a.LastRenderTime
		if a.FPSTime >= 1.0 {
			a.FPS = float64(a.FrameCount) / a.FPSTime
			a.FrameCount = 0
			a.FPSTime = 0
			a.log.Debugf("fps %.1f", a.FPS)
		}
	}
	a.LastRenderTime = now
}

// Run processes events until the window closes, redrawing whenever the
// painter reports a change. Events are awaited for at most the configured
// refresh interval.
func (a *App) Run() {
	refresh := time.Duration(a.Painter.Config().Window.RefreshMillis) * time.Millisecond
	for !a.Window.ShouldClose() {
		glfw.WaitEventsTimeout(refresh.Seconds())
		if a.Painter.Dirty() {
			a.Render()
		}
	}
}

func (a *App) Release() {
	if a.Renderer != nil {
		a.Renderer.Release()
	}
	if a.Device != nil {
		a.Device.Release()
	}
	if a.Adapter != nil {
		a.Adapter.Release()
	}
	if a.Surface != nil {
		a.Surface.Release()
	}
	if a.Instance != nil {
		a.Instance.Release()
	}
}

// MapButton translates a GLFW mouse button to a painter button.
func MapButton(b glfw.MouseButton) (core.Button, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return core.ButtonLeft, true
	case glfw.MouseButtonMiddle:
		return core.ButtonMiddle, true
	case glfw.MouseButtonRight:
		return core.ButtonRight, true
	}
	return 0, false
}

// WheelDelta converts a GLFW vertical scroll offset to a painter wheel
// delta. Scrolling up moves the camera forward.
func WheelDelta(yoff float64) float32 {
	return float32(-yoff)
}
