package main

import (
	"flag"
	"log"
	"os"

	"github.com/emberui/ember/backend/glbackend"
	"github.com/emberui/ember/colors"
	"github.com/emberui/ember/dock"
	"github.com/emberui/ember/draw"
	"github.com/emberui/ember/input"
	"github.com/emberui/ember/platform"
	"github.com/emberui/ember/profiler"
	"github.com/emberui/ember/text"
	"github.com/emberui/ember/ui"
)

type demo struct {
	ctx  *ui.Ctx
	rend *glbackend.Renderer
	win  *platform.Window

	showSettings bool
	darkTheme    bool
	volume       float32
	frameStats   draw.Statistics
}

func (d *demo) Frame(in input.Snapshot) bool {
	if in.CloseRequested {
		return false
	}
	c := d.ctx
	c.NewFrame(in)

	if c.Begin("Inspector") {
		c.Labelf("frame %d", c.Frame())
		c.Labelf("states %d", c.StateCount())
		c.Labelf("cmds %d quads %d dropped %d",
			d.frameStats.Commands, d.frameStats.Quads, d.frameStats.Dropped)
		c.Separator()
		if c.Button("Open Settings") {
			c.SetPanelOpen("Settings", true)
		}
		if c.Button("Save Layout") {
			if err := c.SaveLayout(); err != nil {
				log.Println("save layout:", err)
			}
		}
	}
	c.End()

	if c.Begin("Console") {
		for i := 0; i < 40; i++ {
			c.Labelf("log line %d", i)
		}
	}
	c.End()

	if c.Begin("Settings") {
		c.Checkbox("Dark theme", &d.darkTheme)
		c.SliderFloat("Volume", &d.volume, 0, 1)
		c.Separator()
		c.Row()
		if c.Button("OK") {
			c.SetPanelOpen("Settings", false)
		}
		if c.Button("Cancel") {
			c.SetPanelOpen("Settings", false)
		}
		c.EndRow()
	}
	c.End()

	list, err := c.EndFrame()
	if err != nil {
		log.Println("frame:", err)
	}
	if list != nil {
		d.frameStats = list.Stats()
		fw, fh := d.win.FramebufferSize()
		d.rend.Render(list, fw, fh)
	}
	return true
}

func main() {
	var (
		fontPath   = flag.String("font", "", "TTF font to load (falls back to block glyphs)")
		layoutPath = flag.String("layout", "ember_layout.yaml", "dock layout file")
	)
	flag.Parse()

	profiler.Init(1 << 16)
	defer func() {
		if os.Getenv("EMBER_PROFILE_OUT") != "" {
			if err := profiler.Dump(os.Getenv("EMBER_PROFILE_OUT")); err != nil {
				log.Println("profile dump:", err)
			}
		}
	}()

	cfg := platform.RunConfig{
		Window: platform.Config{
			Title:  "ember demo",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		ClearColor: colors.Hex(0x101216),
	}

	err := platform.Run(cfg, func(win *platform.Window, rend *glbackend.Renderer) (platform.App, error) {
		var font text.Source
		if *fontPath != "" {
			atlas, err := text.LoadTTF(*fontPath, 16)
			if err != nil {
				return nil, err
			}
			atlas.SetTexture(rend.CreateTextureFromPixels(atlas.Pixels, atlas.W, atlas.H))
			font = atlas
		}

		ctx := ui.New(ui.Config{LayoutFile: *layoutPath}, ui.DefaultStyle(), font)
		if err := ctx.LoadLayout(); err != nil {
			log.Println("load layout:", err)
		}
		if ctx.Dock().IsEmpty() {
			// default layout: inspector docked left of the console
			ctx.Dock().Dock("Console", dock.None, dock.EdgeCenter)
			if node, ok := ctx.Dock().Find("Console"); ok {
				ctx.Dock().Dock("Inspector", node, dock.EdgeLeft)
			}
		}

		return &demo{ctx: ctx, rend: rend, win: win}, nil
	})
	if err != nil {
		log.Fatal(err)
	}
}
