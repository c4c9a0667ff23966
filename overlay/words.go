package overlay

import (
	"image"
	"sync"

	"github.com/golang/glog"

	"github.com/peragwin/spacerobot/scene"
)

const wordHeight = 200

// WordDeck flashes words from one of several packs in the middle of the
// screen, stepping to the next word on every beat.
type WordDeck struct {
	mu sync.Mutex

	packs [][]string
	pack  int
	word  int
	on    bool
	alpha uint8

	// Dark reports whether words should be drawn black instead of white.
	Dark func() bool

	img      *image.RGBA
	rendered wordKey
}

type wordKey struct {
	text  string
	alpha uint8
	dark  bool
}

// NewWordDeck creates a word overlay for a width x height display. Empty
// packs keep their number but can't be selected.
func NewWordDeck(packs [][]string, width, height int) *WordDeck {
	for i, p := range packs {
		if len(p) == 0 {
			glog.Warningf("word pack %d is empty and will be ignored", i+1)
		}
	}
	return &WordDeck{
		packs: packs,
		alpha: 150,
		Dark:  func() bool { return false },
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Len is the number of word packs.
func (w *WordDeck) Len() int {
	return len(w.packs)
}

// SetCurrentPack decodes the pack select control. 0 and 127 hide the words,
// 1..Len show that pack from its first word and other values, including
// empty packs, are ignored.
func (w *WordDeck) SetCurrentPack(v int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case v == 0 || v == 127:
		w.on = false
	case v >= 1 && v <= len(w.packs) && len(w.packs[v-1]) > 0:
		w.pack = v - 1
		w.word = 0
		w.on = true
		glog.V(2).Infof("words: pack %d", w.pack)
	}
}

// NextWord steps the current pack to its next word, wrapping.
func (w *WordDeck) NextWord() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.packs) == 0 || len(w.packs[w.pack]) == 0 {
		return
	}
	w.word = (w.word + 1) % len(w.packs[w.pack])
}

// SetAlpha sets the word opacity from a controller value.
func (w *WordDeck) SetAlpha(v int) {
	w.mu.Lock()
	w.alpha = uint8(scene.Round(scene.Remap(float32(v), 0, 127, 0, 255)))
	w.mu.Unlock()
}

// On reports whether words are shown.
func (w *WordDeck) On() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.on
}

// Word returns the current word, or "" when words are hidden.
func (w *WordDeck) Word() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current()
}

func (w *WordDeck) current() string {
	if !w.on || len(w.packs) == 0 || len(w.packs[w.pack]) == 0 {
		return ""
	}
	return w.packs[w.pack][w.word]
}

// Draw draws the current word. The text is only rasterized again when the
// word or its colour changes.
func (w *WordDeck) Draw(f *scene.Frame) {
	w.mu.Lock()
	key := wordKey{w.current(), w.alpha, w.Dark()}
	w.mu.Unlock()
	if key.text == "" {
		return
	}

	if key != w.rendered {
		for i := range w.img.Pix {
			w.img.Pix[i] = 0
		}
		level := uint8(255)
		if key.dark {
			level = 0
		}
		scene.CenteredText(w.img, key.text, wordHeight, scene.Gray(level, key.alpha))
		w.rendered = key
	}
	f.Draw(w.img, scene.Over)
}
