// Package ppu implements the NES picture processing unit: NTSC frame
// pacing, the PPUADDR/PPUDATA/PPUSTATUS register state machine driven by
// the CPU's memory-event channel, and nametable/attribute/pattern/palette
// background rendering.
package ppu

import (
	"sync"
	"time"

	"github.com/golang/glog"

	"nesgo/memory"
)

// Visible NES resolution.
const (
	Width  = 256
	Height = 240
)

// CPU-visible register addresses this package reacts to.
const (
	regPPUCTRL   uint16 = 0x2000
	regPPUSTATUS uint16 = 0x2002
	regPPUADDR   uint16 = 0x2006
	regPPUDATA   uint16 = 0x2007
)

// PPUCTRL bit flags this core tracks (scroll/sprite-size bits are out of
// scope per the distilled spec's non-goals).
const (
	ctrlBackgroundPatternAddr uint8 = 1 << 4
	ctrlGenerateNMI           uint8 = 1 << 7
)

// PPUSTATUS bit flags.
const statusVBlank uint8 = 1 << 7

// PPU address-space layout (§4.G background rendering).
const (
	nametable0    uint16 = 0x2000
	attributeBase uint16 = 0x23C0
	paletteBase   uint16 = 0x3F00
)

// NTSC frame pacing constants. One pixel tick is 186.24ns (a third of a CPU
// clock at 1.789773MHz, the 21.477272MHz master clock /12); one scanline is
// 341 pixel ticks. scanlineDuration is
// rounded to the nearest nanosecond, which keeps a 262-scanline frame within
// a few parts per million of the spec's required 60.0988Hz average.
const (
	pixelsPerScanline   = 341
	scanlinesPerFrame   = 262
	vblankStartScanline = 241
	scanlineDuration    = 63509 * time.Nanosecond
)

// Host is the CPU-side hook the PPU worker uses to deliver vectored NMIs at
// the start of VBlank. mos6502.CPU satisfies this without ppu importing
// mos6502.
type Host interface {
	TriggerNMI()
}

// PPU drives one NES frame loop: consuming CPU memory events to update its
// own register state, rendering a background frame, and toggling the
// CPU-visible VBlank bit.
type PPU struct {
	cpuMem *memory.Space
	ppuMem *memory.Space
	events <-chan memory.Event
	host   Host

	vramAddr uint16
	wLatch   bool

	front      *framebuffer
	back       *framebuffer
	frameMu    sync.Mutex
	debugFront *framebuffer
	debugBack  *framebuffer
	debugOpen  bool

	frames    uint64
	lastStats time.Time
}

// framebuffer is a packed RGBA pixel buffer sized for the visible NES
// resolution (or, for the debug view, the pattern-table viewport).
type framebuffer struct {
	w, h int
	pix  []byte // 4 bytes/pixel, row-major
}

func newFramebuffer(w, h int) *framebuffer {
	return &framebuffer{w: w, h: h, pix: make([]byte, w*h*4)}
}

func (f *framebuffer) set(x, y int, c rgb) {
	if x < 0 || x >= f.w || y < 0 || y >= f.h {
		return
	}
	i := (y*f.w + x) * 4
	f.pix[i+0] = c.r
	f.pix[i+1] = c.g
	f.pix[i+2] = c.b
	f.pix[i+3] = 0xff
}

// New builds a PPU over ppuMem (its own 16KiB address space, already
// populated with CHR data by the mapper) and cpuMem (the CPU's 64KiB
// address space, whose 0x2002 and 0x2000 cells must already be installed as
// atomic cells by the mapper's platform post-pass). events is the receiving
// end of the memory-event channel fed by cpuMem's installed hooks on
// 0x2002 (read), 0x2006 (write), and 0x2007 (write/read).
func New(ppuMem, cpuMem *memory.Space, events <-chan memory.Event, host Host) *PPU {
	return &PPU{
		cpuMem:     cpuMem,
		ppuMem:     ppuMem,
		events:     events,
		host:       host,
		front:      newFramebuffer(Width, Height),
		back:       newFramebuffer(Width, Height),
		debugFront: newFramebuffer(256, 128),
		debugBack:  newFramebuffer(256, 128),
		lastStats:  time.Time{},
	}
}

// ToggleDebugView flips whether the pattern-table debug surface renders
// each frame.
func (p *PPU) ToggleDebugView() {
	p.debugOpen = !p.debugOpen
}

// Frame returns a snapshot of the most recently completed frame's pixels,
// safe to read concurrently with RunFrame rendering the next one.
func (p *PPU) Frame() (pix []byte, w, h int) {
	p.frameMu.Lock()
	defer p.frameMu.Unlock()
	return p.front.pix, p.front.w, p.front.h
}

// DebugFrame returns the most recently rendered pattern-table debug
// surface, and whether it is currently enabled.
func (p *PPU) DebugFrame() (pix []byte, w, h int, open bool) {
	p.frameMu.Lock()
	defer p.frameMu.Unlock()
	return p.debugFront.pix, p.debugFront.w, p.debugFront.h, p.debugOpen
}

// RunFrame executes one full NTSC frame per §4.G's five-step loop: render,
// then busy-wait through VBlank-start and frame-end deadlines while
// continuously draining memory events, setting/clearing VBlank at the
// appropriate deadlines.
func (p *PPU) RunFrame() {
	t0 := time.Now()

	p.renderBackground(p.back)
	if p.debugOpen {
		p.renderPatternTables(p.debugBack)
	}
	p.frameMu.Lock()
	p.front, p.back = p.back, p.front
	p.debugFront, p.debugBack = p.debugBack, p.debugFront
	p.frameMu.Unlock()

	vblankDeadline := time.Duration(vblankStartScanline) * scanlineDuration
	frameDeadline := time.Duration(scanlinesPerFrame) * scanlineDuration

	p.drainUntil(t0, vblankDeadline)
	p.setVBlank(true)
	if p.ctrlGenerateNMI() {
		p.host.TriggerNMI()
	}

	p.drainUntil(t0, frameDeadline)
	p.setVBlank(false)

	p.frames++
	if p.lastStats.IsZero() {
		p.lastStats = time.Now()
	} else if since := time.Since(p.lastStats); since >= 10*time.Second {
		glog.Infof("ppu: %.2f fps over last %s", float64(p.frames)/since.Seconds(), since.Round(time.Second))
		p.frames = 0
		p.lastStats = time.Now()
	}
}

// drainUntil processes memory events non-blockingly until now-t0 reaches
// deadline, per §4.F's loss policy: the channel never drops, so a drained
// receive always keeps up as long as the consumer polls often enough.
func (p *PPU) drainUntil(t0 time.Time, deadline time.Duration) {
	for time.Since(t0) < deadline {
		select {
		case ev := <-p.events:
			p.handleEvent(ev)
		default:
		}
	}
	// Drain whatever arrived in the last few ticks before the deadline so a
	// burst right at the boundary isn't left for the next phase.
	for {
		select {
		case ev := <-p.events:
			p.handleEvent(ev)
		default:
			return
		}
	}
}

// handleEvent applies one CPU-side memory access to PPU register state, per
// §4.G's register state machine.
func (p *PPU) handleEvent(ev memory.Event) {
	switch ev.Address {
	case regPPUADDR:
		if ev.Op != memory.Write {
			return
		}
		if !p.wLatch {
			p.vramAddr = (p.vramAddr & 0x00FF) | (uint16(ev.Value&0x3F) << 8)
		} else {
			p.vramAddr = (p.vramAddr & 0xFF00) | uint16(ev.Value)
		}
		p.wLatch = !p.wLatch
	case regPPUDATA:
		switch ev.Op {
		case memory.Write:
			p.ppuMem.WriteByte(p.vramAddr, ev.Value)
			p.vramAddr++
		case memory.Read:
			b := p.ppuMem.ReadByte(p.vramAddr)
			// Raw store so the CPU-side write hook on 0x2007 does not
			// feed this write-back back in as a PPUDATA write.
			p.cpuMem.SetRawByte(uint32(regPPUDATA), b)
			p.vramAddr++
		}
	case regPPUSTATUS:
		if ev.Op != memory.Read {
			return
		}
		p.wLatch = false
		p.cpuMem.AtomicWriteByte(regPPUSTATUS, ev.Value&^statusVBlank)
	}
}

func (p *PPU) setVBlank(on bool) {
	v := p.cpuMem.AtomicReadByte(regPPUSTATUS)
	if on {
		v |= statusVBlank
	} else {
		v &^= statusVBlank
	}
	p.cpuMem.AtomicWriteByte(regPPUSTATUS, v)
}

func (p *PPU) ctrlGenerateNMI() bool {
	return p.cpuMem.AtomicReadByte(regPPUCTRL)&ctrlGenerateNMI != 0
}

func (p *PPU) backgroundPatternBase() uint16 {
	if p.cpuMem.AtomicReadByte(regPPUCTRL)&ctrlBackgroundPatternAddr != 0 {
		return 0x1000
	}
	return 0x0000
}
