// Package session wires the show together: it owns every piece of state the
// controllers change, binds the MIDI and keyboard controls and composes each
// frame.
package session

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/golang/glog"

	"github.com/peragwin/spacerobot/audio"
	"github.com/peragwin/spacerobot/audio/util"
	"github.com/peragwin/spacerobot/control"
	"github.com/peragwin/spacerobot/deck"
	"github.com/peragwin/spacerobot/overlay"
	"github.com/peragwin/spacerobot/shader"
	"github.com/peragwin/spacerobot/visual"
)

// Options configures a Session.
type Options struct {
	Width, Height int
	SampleRate    float64
	FrameRate     int
	// Channel is the 0-based MIDI channel to listen on.
	Channel int

	WordPacks [][]string
	Palettes  [][]color.RGBA
	Hotcues   []overlay.Pack
	Gradients []util.Gradient
}

// Session is the state of a running show.
type Session struct {
	Width, Height int

	Router *control.Router
	Keys   *control.Keymap

	Mixer       *deck.Mixer
	Visualizers *visual.Bank
	Waveform    *visual.Waveform
	Palette     *overlay.BackgroundPalette
	Words       *overlay.WordDeck
	Hotcues     *overlay.HotcueDeck
	Post        *shader.Bank

	mu           sync.RWMutex
	waveform     bool
	kaleidoscope bool
	delay        bool
	slice        bool
	info         bool
	help         bool

	clock clock
	text  *image.RGBA
}

// New creates a session reading audio from in.
func New(in audio.Frames, opts Options) *Session {
	w, h := opts.Width, opts.Height
	if opts.FrameRate <= 0 {
		opts.FrameRate = 60
	}
	if len(opts.Gradients) == 0 {
		opts.Gradients = []util.Gradient{util.NewColorMap().Ramp(256)}
	}

	s := &Session{
		Width:  w,
		Height: h,
		Router: control.NewRouter(opts.Channel),
		Keys:   control.NewKeymap(),
		Mixer:  deck.NewMixer(),
		Visualizers: visual.NewBank(
			visual.NewOblivion(in, opts.SampleRate, w, h, opts.Gradients),
			visual.NewSprocket(in, opts.SampleRate, w, h),
			visual.NewCandyWarp(in, opts.SampleRate, w, h),
		),
		Waveform: visual.NewWaveform(in, w, h, opts.FrameRate),
		Palette:  overlay.NewBackgroundPalette(opts.Palettes),
		Words:    overlay.NewWordDeck(opts.WordPacks, w, h),
		Hotcues:  overlay.NewHotcueDeck(opts.Hotcues, w, h),
		Post:     shader.NewBank(w, h),
		text:     image.NewRGBA(image.Rect(0, 0, w, h)),
	}
	s.Waveform.Dark = s.Palette.BlackOrWhite
	s.Words.Dark = s.Palette.BlackOrWhite

	s.bindControls()
	s.bindKeys()

	glog.Infof("session: %dx%d, MIDI channel %d, %d hotcue packs, %d word packs",
		w, h, opts.Channel+1, s.Hotcues.Len(), s.Words.Len())
	return s
}

// on returns a handler that runs fn when a button is pressed, reported as a
// value above 100.
func on(fn func()) control.Handler {
	return func(v int) {
		if v > 100 {
			fn()
		}
	}
}

// latch returns a handler that sets *b on a press and clears it on release.
func (s *Session) latch(b *bool) control.Handler {
	return func(v int) {
		s.mu.Lock()
		defer s.mu.Unlock()
		switch {
		case v > 100:
			*b = true
		case v == 0:
			*b = false
		}
	}
}

func (s *Session) toggle(b *bool) func() {
	return func() {
		s.mu.Lock()
		*b = !*b
		s.mu.Unlock()
	}
}

func deckName(what string) func(i int) string {
	return func(i int) string {
		return fmt.Sprintf("deck %s %s", deck.ID(i), what)
	}
}

func (s *Session) bindControls() {
	r := s.Router
	decks := s.Mixer.Decks()

	// decks
	r.BindRange(1, deck.Count, deckName("hotcue"), func(i, v int) {
		if pack, slot, ok := decks[i].ReadyHotcue(v); ok {
			s.Hotcues.Trigger(pack, slot)
		}
	})
	r.BindRange(56, deck.Count, deckName("hotcue pack"), func(i, v int) {
		if v > 0 && !decks[i].SetPack(v, s.Hotcues.Len()) {
			glog.Warningf("deck %s: no hotcue pack %d, using pack 1", deck.ID(i), v)
		}
	})
	r.BindRange(100, deck.Count, deckName("volume"), func(i, v int) {
		decks[i].SetVolume(v)
	})
	r.BindRange(105, deck.Count, deckName("filter"), func(i, v int) {
		decks[i].SetFilter(v)
	})
	r.BindRange(110, deck.Count, deckName("play"), func(i, v int) {
		decks[i].SetPlaying(v == 127)
	})

	// effects
	r.Bind(64, "delay", s.latch(&s.delay))
	r.Bind(65, "slice", s.latch(&s.slice))

	// visualizers
	v := s.Visualizers
	r.Bind(21, "visualizer select", v.Select)
	r.Bind(27, "visualizer button 1", on(v.ToggleButton1))
	r.Bind(28, "visualizer button 2", on(v.ToggleButton2))
	r.Bind(45, "visualizer knob 1", v.SetKnob1)
	r.Bind(48, "visualizer scaling", v.SetScaling)
	r.Bind(52, "visualizer fader 1", v.SetFader1)
	r.Bind(53, "visualizer fader 2", v.SetFader2)
	r.Bind(26, "waveform toggle", on(s.toggle(&s.waveform)))
	r.Bind(49, "waveform scale", s.Waveform.SetScale)
	r.Bind(29, "kaleidoscope toggle", on(s.toggle(&s.kaleidoscope)))

	// background and words
	r.Bind(30, "background beat sync", on(s.Palette.Toggle))
	r.Bind(41, "beat", func(v int) {
		if v > 120 {
			s.Palette.IncColor()
			s.Words.NextWord()
		}
	})
	r.Bind(46, "background black or white", on(s.Palette.ToggleBlackOrWhite))
	r.Bind(47, "word pack", s.Words.SetCurrentPack)
	r.Bind(50, "word alpha", s.Words.SetAlpha)

	// post processing
	r.Bind(54, "post x", s.Post.SetX)
	r.Bind(55, "post y", s.Post.SetY)
	r.Bind(60, "post select", s.Post.Select)
	// a press only, so press and release don't cancel out
	r.Bind(61, "post toggle", on(s.Post.Toggle))
}

func (s *Session) bindKeys() {
	k := s.Keys
	k.Bind("i", "Info toggle", s.toggle(&s.info))
	k.Bind("h?", "Help toggle", s.toggle(&s.help))
	k.Bind("w", "Waveform toggle", s.toggle(&s.waveform))
	k.Bind("d", "Next Visualiser", s.Visualizers.Next)
	k.Bind("a", "Prev Visualiser", s.Visualizers.Prev)
}

// Key handles a key press and reports whether it was bound.
func (s *Session) Key(r rune) bool {
	return s.Keys.Press(r)
}

// flags is a snapshot of the session's toggles.
type flags struct {
	waveform, kaleidoscope, delay, slice, info, help bool
}

func (s *Session) flags() flags {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return flags{s.waveform, s.kaleidoscope, s.delay, s.slice, s.info, s.help}
}
