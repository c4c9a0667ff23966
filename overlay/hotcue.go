package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/golang/glog"
	xdraw "golang.org/x/image/draw"

	"github.com/peragwin/spacerobot/deck"
	"github.com/peragwin/spacerobot/scene"
)

const (
	// HotcueFrames is how many frames a triggered hotcue stays on screen.
	HotcueFrames = 15
	hotcueFade   = 255 / HotcueFrames
)

// Pack is the set of images behind one deck's hotcue buttons.
type Pack [deck.Slots]image.Image

// HotcueDeck flashes a hotcue image over the screen, fading it out over
// HotcueFrames frames. A new trigger replaces the current image and restarts
// the fade.
type HotcueDeck struct {
	mu sync.Mutex

	packs []Pack

	ready  bool
	pack   int
	slot   int
	frames int
	alpha  int

	stretched *image.RGBA
	faded     *image.RGBA
	current   image.Image
}

// NewHotcueDeck creates the overlay for a width x height display.
func NewHotcueDeck(packs []Pack, width, height int) *HotcueDeck {
	r := image.Rect(0, 0, width, height)
	return &HotcueDeck{
		packs:     packs,
		alpha:     255,
		stretched: image.NewRGBA(r),
		faded:     image.NewRGBA(r),
	}
}

// Len is the number of packs.
func (h *HotcueDeck) Len() int {
	return len(h.packs)
}

// Trigger shows image slot of pack at full alpha. Out of range requests are
// ignored.
func (h *HotcueDeck) Trigger(pack, slot int) {
	if pack < 0 || pack >= len(h.packs) || slot < 0 || slot >= deck.Slots {
		glog.Warningf("hotcue: no image for pack %d slot %d", pack, slot)
		return
	}
	h.mu.Lock()
	h.pack, h.slot = pack, slot
	h.frames = 0
	h.alpha = 255
	h.ready = true
	h.mu.Unlock()
	glog.V(2).Infof("hotcue: pack %d slot %d", pack, slot)
}

// Ready reports whether a hotcue is fading.
func (h *HotcueDeck) Ready() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ready
}

// State returns the showing pack and slot and the alpha of the next frame.
func (h *HotcueDeck) State() (pack, slot, alpha int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pack, h.slot, h.alpha
}

// Draw draws the current hotcue, stretched over the frame, and advances the
// fade.
func (h *HotcueDeck) Draw(f *scene.Frame) {
	h.mu.Lock()
	if !h.ready {
		h.mu.Unlock()
		return
	}
	img := h.packs[h.pack][h.slot]
	alpha := h.alpha
	h.frames++
	h.alpha -= hotcueFade
	if h.frames >= HotcueFrames {
		h.ready = false
	}
	h.mu.Unlock()

	if img != h.current {
		xdraw.BiLinear.Scale(h.stretched, h.stretched.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		h.current = img
	}
	mask := image.NewUniform(color.Alpha{uint8(max(alpha, 0))})
	draw.DrawMask(h.faded, h.faded.Bounds(), h.stretched, image.Point{}, mask, image.Point{}, draw.Src)
	f.Draw(h.faded, scene.Over)
}
