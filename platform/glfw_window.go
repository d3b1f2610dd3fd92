// Package platform owns the OS window and translates GLFW callbacks into
// the event model consumed by input.Collector.
package platform

import (
	"log"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/emberui/ember/input"
)

// Config describes the window to open.
type Config struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}

// Window wraps a GLFW window and pushes events to a handler in arrival
// order. All methods must run on the main thread.
type Window struct {
	w    *glfw.Window
	onEv func(input.Event)
}

// NewWindow opens the window and makes its GL context current. Must be
// called on the main thread before any GL calls.
func NewWindow(cfg Config, onEvent func(input.Event)) (*Window, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	// GL 3.3 core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		return nil, err
	}
	log.Printf("GL: %s\n", gl.GoStr(gl.GetString(gl.VERSION)))

	gw := &Window{w: win, onEv: onEvent}

	win.SetCloseCallback(func(*glfw.Window) { gw.emit(input.EventCloseRequested{}) })
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gw.emit(input.EventResize{W: w, H: h})
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		gw.emit(input.EventMouseMove{X: x, Y: y})
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, btn glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		b, ok := translateButton(btn)
		if !ok {
			return
		}
		gw.emit(input.EventMouseButton{Button: b, Down: action == glfw.Press, Mods: translateMods(mods)})
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		gw.emit(input.EventScroll{Xoff: xoff, Yoff: yoff})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == input.KeyUnknown {
			return
		}
		gw.emit(input.EventKey{Key: k, Down: action != glfw.Release, Mods: translateMods(mods)})
	})
	win.SetCharCallback(func(_ *glfw.Window, r rune) {
		gw.emit(input.EventChar{Rune: r})
	})

	return gw, nil
}

func (g *Window) emit(ev input.Event) {
	if g.onEv != nil {
		g.onEv(ev)
	}
}

func (g *Window) PollEvents()                 { glfw.PollEvents() }
func (g *Window) SwapBuffers()                { g.w.SwapBuffers() }
func (g *Window) ShouldClose() bool           { return g.w.ShouldClose() }
func (g *Window) FramebufferSize() (int, int) { return g.w.GetFramebufferSize() }
func (g *Window) ContentScale() (float32, float32) {
	return g.w.GetContentScale()
}
func (g *Window) SetTitle(t string) { g.w.SetTitle(t) }
func (g *Window) Close()            { g.w.SetShouldClose(true) }

func (g *Window) Shutdown() {
	g.w.Destroy()
	glfw.Terminate()
}

func translateButton(b glfw.MouseButton) (input.Button, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return input.ButtonLeft, true
	case glfw.MouseButtonRight:
		return input.ButtonRight, true
	case glfw.MouseButtonMiddle:
		return input.ButtonMiddle, true
	default:
		return 0, false
	}
}

func translateKey(k glfw.Key) input.Key {
	switch k {
	case glfw.KeyEscape:
		return input.KeyEscape
	case glfw.KeySpace:
		return input.KeySpace
	case glfw.KeyEnter:
		return input.KeyEnter
	case glfw.KeyBackspace:
		return input.KeyBackspace
	case glfw.KeyDelete:
		return input.KeyDelete
	case glfw.KeyTab:
		return input.KeyTab
	case glfw.KeyLeft:
		return input.KeyLeft
	case glfw.KeyRight:
		return input.KeyRight
	case glfw.KeyUp:
		return input.KeyUp
	case glfw.KeyDown:
		return input.KeyDown
	case glfw.KeyHome:
		return input.KeyHome
	case glfw.KeyEnd:
		return input.KeyEnd
	default:
		return input.KeyUnknown
	}
}

func translateMods(m glfw.ModifierKey) input.Mod {
	var out input.Mod
	if m&glfw.ModShift != 0 {
		out |= input.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= input.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= input.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= input.ModSuper
	}
	return out
}
