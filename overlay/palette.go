package overlay

import (
	"image/color"
	"sync"

	"github.com/golang/glog"

	"github.com/peragwin/spacerobot/scene"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

// BackgroundPalette picks the background colour. With beat sync off the
// background is flat black, or white in monochrome mode; with it on, every
// beat steps through the colours of the current palette.
type BackgroundPalette struct {
	mu sync.RWMutex

	palettes [][]color.RGBA
	palette  int
	color    int

	beatSync     bool
	blackOrWhite bool
}

// NewBackgroundPalette starts on the first colour of the first palette.
// Empty palettes are dropped, and with none left a black and white palette
// is used.
func NewBackgroundPalette(palettes [][]color.RGBA) *BackgroundPalette {
	var ps [][]color.RGBA
	for i, p := range palettes {
		if len(p) == 0 {
			glog.Warningf("palette %d is empty, skipping", i)
			continue
		}
		ps = append(ps, p)
	}
	if len(ps) == 0 {
		glog.Warning("no palettes configured, using black and white")
		ps = [][]color.RGBA{{black, white}}
	}
	return &BackgroundPalette{palettes: ps}
}

// Len is the number of palettes.
func (b *BackgroundPalette) Len() int {
	return len(b.palettes)
}

// IncPalette moves to the next palette, wrapping.
func (b *BackgroundPalette) IncPalette() {
	b.mu.Lock()
	b.incPalette()
	b.mu.Unlock()
}

func (b *BackgroundPalette) incPalette() {
	b.palette = (b.palette + 1) % len(b.palettes)
	// palettes differ in length
	b.color %= len(b.palettes[b.palette])
}

// IncColor steps to the next colour of the current palette and returns it.
func (b *BackgroundPalette) IncColor() color.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.palettes[b.palette]
	b.color = (b.color + 1) % len(p)
	return p[b.color]
}

// Toggle flips beat sync. Turning it on also moves to the next palette.
func (b *BackgroundPalette) Toggle() {
	b.mu.Lock()
	b.beatSync = !b.beatSync
	if b.beatSync {
		b.incPalette()
	}
	on, p := b.beatSync, b.palette
	b.mu.Unlock()
	glog.V(2).Infof("background: beat sync %v, palette %d", on, p)
}

// ToggleBlackOrWhite flips monochrome mode.
func (b *BackgroundPalette) ToggleBlackOrWhite() {
	b.mu.Lock()
	b.blackOrWhite = !b.blackOrWhite
	b.mu.Unlock()
}

// BlackOrWhite reports whether monochrome mode is on, meaning a white
// background that foreground elements draw dark on.
func (b *BackgroundPalette) BlackOrWhite() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.blackOrWhite
}

// BeatSync reports whether beats change the background.
func (b *BackgroundPalette) BeatSync() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.beatSync
}

// Index returns the current palette and colour positions.
func (b *BackgroundPalette) Index() (palette, color int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.palette, b.color
}

// Color is the background to draw this frame.
func (b *BackgroundPalette) Color() color.RGBA {
	b.mu.RLock()
	defer b.mu.RUnlock()
	switch {
	case b.beatSync:
		return b.palettes[b.palette][b.color]
	case b.blackOrWhite:
		return white
	default:
		return black
	}
}

// Draw sets the frame background.
func (b *BackgroundPalette) Draw(f *scene.Frame) {
	f.Clear(b.Color())
}
