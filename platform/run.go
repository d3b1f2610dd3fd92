package platform

import (
	"log"
	"runtime"

	"github.com/emberui/ember/backend/glbackend"
	"github.com/emberui/ember/colors"
	"github.com/emberui/ember/input"
	"github.com/emberui/ember/profiler"
)

// App builds one frame of UI. The snapshot is this frame's frozen input;
// return false to quit.
type App interface {
	Frame(in input.Snapshot) bool
}

// AppFunc adapts a plain function to App.
type AppFunc func(in input.Snapshot) bool

func (f AppFunc) Frame(in input.Snapshot) bool { return f(in) }

// RunConfig extends the window config with loop settings.
type RunConfig struct {
	Window     Config
	Input      input.Config
	ClearColor colors.Color
}

// Run opens the window, wires events into a collector and drives the frame
// loop until the window closes or the app returns false. The app's Frame is
// expected to render through the Renderer it was handed at setup.
func Run(cfg RunConfig, setup func(*Window, *glbackend.Renderer) (App, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	collector := input.NewCollector(cfg.Input)
	win, err := NewWindow(cfg.Window, collector.Handle)
	if err != nil {
		return err
	}
	defer win.Shutdown()

	rend, err := glbackend.New()
	if err != nil {
		return err
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)
	collector.SetSurfaceSize(w, h)

	app, err := setup(win, rend)
	if err != nil {
		return err
	}

	clear := cfg.ClearColor
	for !win.ShouldClose() {
		endPoll := profiler.Start("poll")
		win.PollEvents()
		endPoll()

		fw, fh := win.FramebufferSize()
		if fw < 1 || fh < 1 {
			continue
		}
		rend.Resize(fw, fh)
		collector.SetSurfaceSize(fw, fh)

		rend.Clear(clear[0], clear[1], clear[2], clear[3])

		endFrame := profiler.Start("frame")
		ok := app.Frame(collector.Snapshot())
		endFrame()
		if !ok {
			break
		}

		win.SwapBuffers()
	}

	log.Println("ember exit")
	return nil
}
