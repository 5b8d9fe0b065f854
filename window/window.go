// Package window opens a GLFW window with an OpenGL 4.1 core context and
// reports its size changes on the notification bus.
package window

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"render2d/config"
	"render2d/core"
	"render2d/internal/reactable"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string

	bus    *reactable.Bus
	logger *slog.Logger
}

// New creates the window and makes its context current. The framebuffer
// size is published as ViewportSizeChanged now and on every resize.
func New(cfg config.Window, bus *reactable.Bus, logger *slog.Logger) (*Window, error) {
	if bus == nil {
		return nil, core.NilArgument("bus")
	}
	if logger == nil {
		return nil, core.NilArgument("logger")
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	handle, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{
		Handle: handle,
		Width:  cfg.Width,
		Height: cfg.Height,
		Title:  cfg.Title,
		bus:    bus,
		logger: logger.With("window", cfg.Title),
	}
	handle.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		w.Width = width
		w.Height = height
	})
	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.publishViewport(width, height)
	})
	w.publishViewport(handle.GetFramebufferSize())

	w.logger.Info("window created", "width", cfg.Width, "height", cfg.Height, "vsync", cfg.VSync)
	return w, nil
}

func (w *Window) publishViewport(width, height int) {
	// Minimized windows report a zero framebuffer.
	if width <= 0 || height <= 0 {
		return
	}
	w.logger.Debug("framebuffer resized", "width", width, "height", height)
	w.bus.SetViewport(uint32(width), uint32(height))
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

// Close asks the frame loop to stop.
func (w *Window) Close() {
	w.Handle.SetShouldClose(true)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) FramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func (w *Window) IsKeyPressed(key glfw.Key) bool {
	return w.Handle.GetKey(key) == glfw.Press
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

// Time is the number of seconds since the window was created.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}
