package deck

import (
	"math"
	"testing"
)

func TestBlurEngaged(t *testing.T) {
	// filter knob 64 is the centre (intensity 0); 66 is just past the dead zone
	for _, volume := range []int{30, 31} {
		for _, knob := range []int{64, 66} {
			for _, playing := range []bool{false, true} {
				d := New(A)
				d.SetVolume(volume)
				d.SetFilter(knob)
				d.SetPlaying(playing)

				s := d.State()
				exp := playing && volume > 30 && s.Filter > 0
				if d.BlurEngaged() != exp || s.BlurEngaged != exp {
					t.Errorf("volume=%d knob=%d playing=%v: got %v, want %v",
						volume, knob, playing, d.BlurEngaged(), exp)
				}
			}
		}
	}
}

func TestFilterIntensity(t *testing.T) {
	tests := []struct {
		knob int
		exp  float64
	}{
		{64, 0},
		{65, 0}, // 0.127 is inside the dead zone
		{1, 8},
		{127, 8},
		{0, 8 + 16.0/126},
	}
	for _, tt := range tests {
		if got := FilterIntensity(tt.knob); math.Abs(got-tt.exp) > 1e-9 {
			t.Errorf("FilterIntensity(%d) = %v, want %v", tt.knob, got, tt.exp)
		}
	}
	if f := FilterIntensity(66); f <= filterDeadZone {
		t.Fatal("knob 66 should clear the dead zone", f)
	}
}

func TestMixerFilterIntensity(t *testing.T) {
	engage := func(d *Deck, knob int) {
		d.SetVolume(100)
		d.SetPlaying(true)
		d.SetFilter(knob)
	}

	t.Run("none engaged", func(t *testing.T) {
		m := NewMixer()
		m.Deck(A).SetFilter(1)
		m.Deck(B).SetVolume(127)
		if m.FilterIntensity() != 0 {
			t.Fatal(m.FilterIntensity())
		}
	})

	t.Run("one engaged", func(t *testing.T) {
		m := NewMixer()
		engage(m.Deck(C), 100)
		if m.FilterIntensity() != FilterIntensity(100) {
			t.Fatal(m.FilterIntensity())
		}
	})

	t.Run("max of engaged only", func(t *testing.T) {
		m := NewMixer()
		engage(m.Deck(A), 90)
		engage(m.Deck(B), 120)
		// D has the strongest filter but is paused, so it must not count
		m.Deck(D).SetVolume(127)
		m.Deck(D).SetFilter(1)

		if m.FilterIntensity() != FilterIntensity(120) {
			t.Fatal(m.FilterIntensity())
		}

		m.Deck(B).SetPlaying(false)
		if m.FilterIntensity() != FilterIntensity(90) {
			t.Fatal("intensity should follow the remaining engaged deck", m.FilterIntensity())
		}
	})
}

func TestSlotForValue(t *testing.T) {
	for slot, v := range []int{15, 31, 47, 63, 79, 95, 111, 127} {
		got, ok := SlotForValue(v)
		if !ok || got != slot {
			t.Errorf("SlotForValue(%d) = %d, %v", v, got, ok)
		}
	}
	for _, v := range []int{0, 1, 14, 16, 30, 64, 126, 128} {
		if _, ok := SlotForValue(v); ok {
			t.Errorf("SlotForValue(%d) should not match a slot", v)
		}
	}
}

func TestReadyHotcue(t *testing.T) {
	d := New(B)
	d.SetPack(3, 4)

	d.SetVolume(25)
	if _, _, ok := d.ReadyHotcue(47); ok {
		t.Fatal("hotcue should not fire with the fader at 25")
	}

	d.SetVolume(26)
	pack, slot, ok := d.ReadyHotcue(47)
	if !ok || pack != 2 || slot != 2 {
		t.Fatal(pack, slot, ok)
	}
	if _, _, ok := d.ReadyHotcue(50); ok {
		t.Fatal("non-slot values should be ignored")
	}
	if d.State().Hotcue != 2 {
		t.Fatal("ignored trigger should not move the hotcue index")
	}
}

func TestSetPack(t *testing.T) {
	d := New(A)
	if !d.SetPack(2, 2) || d.State().Pack != 1 {
		t.Fatal(d.State())
	}
	if d.SetPack(3, 2) || d.State().Pack != 0 {
		t.Fatal("out of range packs should fall back to pack 0", d.State())
	}
}

func TestStatus(t *testing.T) {
	d := New(A)
	d.SetVolume(90)
	d.SetPlaying(true)
	if s := d.State().Status(); s != "Deck A is Playing fader = 90 filter = 0.00" {
		t.Fatal(s)
	}
	if D.String() != "D" {
		t.Fatal(D.String())
	}
}
