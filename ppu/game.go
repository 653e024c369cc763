package ppu

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Game adapts a running PPU to the ebiten.Game interface, matching the
// teacher's Bus.Layout/Draw/Update split (console/bus.go) but blitting with
// WritePixels instead of a per-pixel Set loop, since the whole framebuffer
// is already laid out as a packed RGBA byte slice.
type Game struct {
	ppu *PPU

	main  *ebiten.Image
	debug *ebiten.Image
}

// NewGame wraps ppu for ebiten.RunGame. The caller is expected to run
// ppu.RunFrame in its own goroutine; Game.Update never drives the emulation
// itself, matching the teacher's documented rationale that ebiten's own
// 60Hz tick is not used as the frame driver.
func NewGame(p *PPU) *Game {
	return &Game{
		ppu:   p,
		main:  ebiten.NewImage(Width, Height),
		debug: ebiten.NewImage(256, 128),
	}
}

// Layout returns the NES's fixed resolution (plus room for the debug
// viewport when open), forcing ebiten to scale on window resize rather than
// letting the logical resolution drift, matching the teacher's rationale in
// console/bus.go's Layout.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	_, _, _, open := g.ppu.DebugFrame()
	if open {
		return Width, Height + 128
	}
	return Width, Height
}

// Update does not drive the emulation: that is done by the CPU/PPU worker
// goroutines, not by ebiten's own tick, exactly as the teacher's Bus.Update
// documents. Its only job is to toggle the pattern-table debug view while F1
// is held.
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyF1) {
		g.ppu.ToggleDebugView()
	}
	return nil
}

// Draw blits the PPU's most recent frame (and, if open, the pattern-table
// debug surface) into screen. The debug surface is composited as a second
// viewport inside this single window rather than a second OS window,
// because ebiten has no multi-window API (§4.G expansion; REDESIGN FLAGS).
func (g *Game) Draw(screen *ebiten.Image) {
	pix, _, _ := g.ppu.Frame()
	g.main.WritePixels(pix)

	opts := &ebiten.DrawImageOptions{}
	screen.DrawImage(g.main, opts)

	debugPix, _, _, open := g.ppu.DebugFrame()
	if !open {
		return
	}
	g.debug.WritePixels(debugPix)
	opts = &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(0, Height)
	screen.DrawImage(g.debug, opts)
}
