// Package deck mirrors the state of the four DJ decks (A to D) as reported
// by the DJ software over MIDI.
package deck

import (
	"fmt"
	"math"
	"sync"
)

// ID names one of the four decks.
type ID int

// The decks, in CC order.
const (
	A ID = iota
	B
	C
	D

	Count = 4
)

func (id ID) String() string {
	if id < A || id > D {
		return fmt.Sprintf("ID(%d)", int(id))
	}
	return string(rune('A' + int(id)))
}

const (
	// blurFader is the fader position a deck must exceed to drive the blur.
	blurFader = 30
	// hotcueFader is the fader position a deck must exceed to fire hotcues.
	hotcueFader = 25
	// filterDeadZone snaps filter intensities below it to zero.
	filterDeadZone = 0.15
	// Slots is the number of hotcues in a pack.
	Slots = 8
)

// State is a snapshot of a deck.
type State struct {
	ID          ID
	Volume      int
	Playing     bool
	Filter      float64
	Pack        int
	Hotcue      int
	BlurEngaged bool
}

// Status renders the one-line summary shown in the info overlay.
func (s State) Status() string {
	p := "Paused"
	if s.Playing {
		p = "Playing"
	}
	return fmt.Sprintf("Deck %s is %s fader = %d filter = %.2f", s.ID, p, s.Volume, s.Filter)
}

// Deck holds the fader, transport and filter state of one deck together with
// the hotcue pack assigned to it.
type Deck struct {
	mu      sync.RWMutex
	id      ID
	volume  int
	playing bool
	filter  float64
	pack    int
	hotcue  int
}

// New creates a deck at rest: fader down, paused, filter neutral, pack 0.
func New(id ID) *Deck {
	return &Deck{id: id}
}

// ID returns the deck's identity.
func (d *Deck) ID() ID {
	return d.id
}

// SetVolume sets the channel fader position [0,127].
func (d *Deck) SetVolume(v int) {
	d.mu.Lock()
	d.volume = clamp(v, 0, 127)
	d.mu.Unlock()
}

// SetPlaying sets the transport state.
func (d *Deck) SetPlaying(p bool) {
	d.mu.Lock()
	d.playing = p
	d.mu.Unlock()
}

// SetFilter takes the raw filter knob value. The knob is bipolar with its
// centre at 64; the intensity is the distance from the centre mapped to
// [0,8], with a small dead zone.
func (d *Deck) SetFilter(v int) {
	f := FilterIntensity(v)
	d.mu.Lock()
	d.filter = f
	d.mu.Unlock()
}

// FilterIntensity maps a filter knob value to an intensity.
func FilterIntensity(v int) float64 {
	f := math.Abs(mapRange(float64(v), 1, 127, -8, 8))
	if f < filterDeadZone {
		return 0
	}
	return f
}

// SetPack assigns hotcue pack value-1 to the deck. Values beyond the number
// of loaded packs fall back to pack 0 and report false.
func (d *Deck) SetPack(value, packs int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.hotcue = 0
	if value > packs || value < 1 {
		d.pack = 0
		return false
	}
	d.pack = value - 1
	return true
}

// SlotForValue decodes a hotcue CC value. Only the exact values 15, 31, ...,
// 127 map to slots 0 through 7.
func SlotForValue(v int) (int, bool) {
	if v < 15 || v > 127 || (v+1)%16 != 0 {
		return 0, false
	}
	return (v+1)/16 - 1, true
}

// ReadyHotcue decodes a hotcue trigger. It returns the deck's pack and the
// slot to show when the fader is open and the value names a slot.
func (d *Deck) ReadyHotcue(v int) (pack, slot int, ok bool) {
	slot, ok = SlotForValue(v)
	if !ok {
		return 0, 0, false
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.volume <= hotcueFader {
		return 0, 0, false
	}
	d.hotcue = slot
	return d.pack, slot, true
}

// BlurEngaged reports whether the deck is audible, playing and filtered.
func (d *Deck) BlurEngaged() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.blurEngaged()
}

func (d *Deck) blurEngaged() bool {
	return d.playing && d.volume > blurFader && d.filter > 0
}

// State returns a consistent snapshot of the deck.
func (d *Deck) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return State{
		ID:          d.id,
		Volume:      d.volume,
		Playing:     d.playing,
		Filter:      d.filter,
		Pack:        d.pack,
		Hotcue:      d.hotcue,
		BlurEngaged: d.blurEngaged(),
	}
}

func mapRange(v, inLo, inHi, outLo, outHi float64) float64 {
	return outLo + (outHi-outLo)*(v-inLo)/(inHi-inLo)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
