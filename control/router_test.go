package control

import (
	"testing"

	"gitlab.com/gomidi/midi/v2"
)

func TestRouterDispatch(t *testing.T) {
	r := NewRouter(9)
	got := -1
	r.Bind(100, "deckAVolume", func(v int) { got = v })

	if !r.Handle(9, 100, 90) || got != 90 {
		t.Fatal("bound cc was not dispatched", got)
	}

	got = -1
	if r.Handle(3, 100, 10) || got != -1 {
		t.Fatal("messages on other channels must be ignored")
	}

	r.Handle(9, 100, 300)
	if got != 127 {
		t.Fatal("values should be clamped to 127", got)
	}
}

func TestRouterUnbound(t *testing.T) {
	r := NewRouter(0)
	calls := 0
	r.Bind(21, "visualizer", func(int) { calls++ })

	for cc := -5; cc < Slots+5; cc++ {
		if cc == 21 {
			continue
		}
		for _, v := range []int{0, 64, 127} {
			if r.Handle(0, cc, v) {
				t.Fatalf("cc %d should not dispatch", cc)
			}
		}
	}
	if calls != 0 {
		t.Fatal("unbound ccs reached a handler", calls)
	}
}

func TestRouterBind(t *testing.T) {
	r := NewRouter(0)
	r.Bind(Slots, "overflow", func(int) {})
	r.Bind(-1, "underflow", func(int) {})
	if _, ok := r.Bound(Slots); ok {
		t.Fatal("out of range cc should not be bound")
	}

	var seen [4]int
	r.BindRange(110, 4, func(i int) string { return "play" + string(rune('A'+i)) },
		func(i, v int) { seen[i] = v })
	r.Handle(0, 112, 127)
	if seen != [4]int{0, 0, 127, 0} {
		t.Fatal(seen)
	}
	if name, ok := r.Bound(113); !ok || name != "playD" {
		t.Fatal(name, ok)
	}
}

func TestHandleMessage(t *testing.T) {
	r := NewRouter(9)
	got := 0
	r.Bind(41, "beat", func(v int) { got = v })

	if !r.HandleMessage(midi.ControlChange(9, 41, 125)) || got != 125 {
		t.Fatal("control change was not decoded", got)
	}
	if r.HandleMessage(midi.NoteOn(9, 41, 100)) {
		t.Fatal("note messages must be ignored")
	}
}

func TestKeymap(t *testing.T) {
	k := NewKeymap()
	help := false
	k.Bind("h?", "Help toggle", func() { help = !help })
	k.Bind("w", "Waveform toggle", func() {})

	if !k.Press('?') || !help {
		t.Fatal("? should toggle help")
	}
	if !k.Press('h') || help {
		t.Fatal("h should toggle help")
	}
	if k.Press('z') {
		t.Fatal("unbound keys should report false")
	}

	lines := k.Help()
	if len(lines) != 2 || lines[0] != "?/h - Help toggle" || lines[1] != "w - Waveform toggle" {
		t.Fatal(lines)
	}
}
