package gfx

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	openglVersionMajor = 4
	openglVersionMinor = 1
)

// Window represents a wrapped glfw window object.
type Window struct {
	Config     *WindowConfig
	GlfwWindow *glfw.Window
}

// WindowConfig contains a new window configuration
type WindowConfig struct {
	Width  int
	Height int
	Title  string

	// Fullscreen opens the window on the monitor numbered Display, 1 being
	// the primary one, at that monitor's resolution. 0 also means primary.
	Fullscreen bool
	Display    int
}

// NewWindow initializes a new window object with glfw.
func NewWindow(cfg *WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, openglVersionMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, openglVersionMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		m, err := pickMonitor(cfg.Display)
		if err != nil {
			return nil, err
		}
		mode := m.GetVideoMode()
		cfg.Width, cfg.Height = mode.Width, mode.Height
		monitor = m
	}

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return &Window{Config: cfg, GlfwWindow: window}, nil
}

func pickMonitor(display int) (*glfw.Monitor, error) {
	monitors := glfw.GetMonitors()
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors connected")
	}
	if display == 0 {
		display = 1
	}
	if display < 1 || display > len(monitors) {
		return nil, fmt.Errorf("display %d not found, %d connected", display, len(monitors))
	}
	return monitors[display-1], nil
}

// OnKey calls fn with every character typed into the window.
func (w *Window) OnKey(fn func(r rune)) {
	w.GlfwWindow.SetCharCallback(func(_ *glfw.Window, char rune) {
		fn(char)
	})
}

// Size is the framebuffer size in pixels.
func (w *Window) Size() (int, int) {
	return w.GlfwWindow.GetFramebufferSize()
}
