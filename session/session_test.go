package session

import (
	"image"
	"image/color"
	"math"
	"reflect"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/peragwin/spacerobot/audio"
	"github.com/peragwin/spacerobot/deck"
	"github.com/peragwin/spacerobot/overlay"
	"github.com/peragwin/spacerobot/scene"
	"github.com/peragwin/spacerobot/shader"
)

const (
	width   = 320
	height  = 240
	channel = 10
)

func testPack() overlay.Pack {
	var p overlay.Pack
	for i := range p {
		p[i] = image.NewRGBA(image.Rect(0, 0, 8, 8))
	}
	return p
}

func newSession() *Session {
	return New(audio.NewInput(1024), Options{
		Width:      width,
		Height:     height,
		SampleRate: 48000,
		FrameRate:  60,
		Channel:    channel,
		WordPacks:  [][]string{{"GIANT", "SPACE", "ROBOT"}},
		Palettes:   [][]color.RGBA{{{255, 0, 0, 255}, {0, 0, 255, 255}}},
		Hotcues:    []overlay.Pack{testPack(), testPack()},
	})
}

func (s *Session) cc(number, value int) bool {
	return s.Router.Handle(channel, number, value)
}

func TestDeckScenario(t *testing.T) {
	s := newSession()
	a := s.Mixer.Deck(deck.A)

	s.cc(100, 90)
	if a.State().Volume != 90 {
		t.Fatal("expected fader 90, got", a.State().Volume)
	}
	s.cc(110, 127)
	if !a.State().Playing {
		t.Fatal("deck A should be playing")
	}
	s.cc(105, 64)
	// 64 is the centre of the knob, inside the dead zone
	if a.State().Filter != deck.FilterIntensity(64) || a.State().Filter != 0 || a.BlurEngaged() {
		t.Fatal("a centred filter should not engage the blur", a.State())
	}

	s.cc(105, 127)
	if !a.BlurEngaged() || s.Mixer.FilterIntensity() != 8 {
		t.Fatal("a full filter should engage the blur", a.State())
	}

	s.cc(110, 100)
	if a.State().Playing {
		t.Fatal("only 127 means playing")
	}

	if s.Router.Handle(channel+1, 100, 10) || a.State().Volume != 90 {
		t.Fatal("other channels should be ignored")
	}
}

var boundCCs = []int{
	1, 2, 3, 4,
	21, 26, 27, 28, 29, 30,
	41, 45, 46, 47, 48, 49, 50, 52, 53, 54, 55,
	56, 57, 58, 59, 60, 61, 64, 65,
	100, 101, 102, 103, 105, 106, 107, 108, 110, 111, 112, 113,
}

func TestBoundSet(t *testing.T) {
	s := newSession()
	var got []int
	for cc := 0; cc < 256; cc++ {
		if _, ok := s.Router.Bound(cc); ok {
			got = append(got, cc)
		}
	}
	exp := append([]int(nil), boundCCs...)
	sort.Ints(exp)
	if !reflect.DeepEqual(got, exp) {
		t.Fatal("unexpected bound set", got)
	}
}

func TestUnboundIsNoop(t *testing.T) {
	s := newSession()
	bound := map[int]bool{}
	for _, cc := range boundCCs {
		bound[cc] = true
	}

	before := s.Status()
	_, _, hc := s.Hotcues.State()
	for cc := -5; cc < 300; cc++ {
		if bound[cc] {
			continue
		}
		for _, v := range []int{0, 1, 64, 101, 121, 127, 200} {
			if s.cc(cc, v) {
				t.Fatal("cc", cc, "should not be handled")
			}
		}
	}
	if after := s.Status(); !reflect.DeepEqual(before, after) {
		t.Fatal("unbound controls changed state", before, after)
	}
	if _, _, a := s.Hotcues.State(); a != hc || s.Hotcues.Ready() {
		t.Fatal("unbound controls changed the hotcues")
	}
}

func TestToggles(t *testing.T) {
	s := newSession()

	for _, cc := range []int{26, 29, 61} {
		s.cc(cc, 100)
	}
	st := s.Status()
	if st.Waveform || st.Kaleidoscope || st.PostEnabled {
		t.Fatal("toggles need a value above 100")
	}
	for _, cc := range []int{26, 29, 61, 30, 46} {
		s.cc(cc, 127)
	}
	st = s.Status()
	if !st.Waveform || !st.Kaleidoscope || !st.PostEnabled || !st.BeatSync || !st.Monochrome {
		t.Fatal("toggles should be on", st)
	}

	s.cc(64, 127)
	s.cc(64, 50)
	if !s.Status().Delay {
		t.Fatal("delay should stay on until released")
	}
	s.cc(64, 0)
	if s.Status().Delay {
		t.Fatal("delay should be off")
	}

	s.cc(47, 1)
	s.cc(41, 120)
	if s.Status().Word != "GIANT" {
		t.Fatal("beats need a value above 120")
	}
	s.cc(41, 127)
	st = s.Status()
	if st.Word != "SPACE" || st.Color != 1 {
		t.Fatal("a beat should advance the word and colour", st)
	}
}

func TestVisualizerControls(t *testing.T) {
	s := newSession()
	if s.Status().Visualizer != "Oblivion" {
		t.Fatal("unexpected first visualizer")
	}
	s.cc(21, 2)
	if s.Status().Visualizer != "Sprocket" {
		t.Fatal("cc 21 value 2 should select the next visualizer")
	}
	s.cc(21, 1)
	s.cc(21, 1)
	if s.Status().Visualizer != "CandyWarp" {
		t.Fatal("cc 21 value 1 should wrap back to the last visualizer")
	}

	s.cc(60, 3)
	s.cc(54, 127)
	s.cc(55, 0)
	if s.Status().PostShader != "channels X = 320 Y = 0" {
		t.Fatal("unexpected post shader", s.Status().PostShader)
	}
	s.cc(60, 100)
	if idx, _ := s.Post.Current(); idx != 0 {
		t.Fatal("out of range effects should select the first")
	}
}

func TestHotcueControls(t *testing.T) {
	s := newSession()

	s.cc(100, 25)
	s.cc(1, 47)
	if s.Hotcues.Ready() {
		t.Fatal("hotcues need the fader above 25")
	}

	s.cc(100, 26)
	s.cc(56, 2)
	s.cc(1, 46)
	if s.Hotcues.Ready() {
		t.Fatal("only exact slot values trigger")
	}
	s.cc(1, 47)
	pack, slot, alpha := s.Hotcues.State()
	if !s.Hotcues.Ready() || pack != 1 || slot != 2 || alpha != 255 {
		t.Fatal("expected pack 1 slot 2 at full alpha", pack, slot, alpha)
	}

	s.cc(57, 9)
	if s.Mixer.Deck(deck.B).State().Pack != 0 {
		t.Fatal("unknown packs should fall back to the first")
	}
}

func TestKeys(t *testing.T) {
	s := newSession()

	if !s.Key('d') || s.Status().Visualizer != "Sprocket" {
		t.Fatal("d should select the next visualizer")
	}
	if !s.Key('a') || s.Status().Visualizer != "Oblivion" {
		t.Fatal("a should select the previous visualizer")
	}
	s.Key('w')
	if !s.Status().Waveform {
		t.Fatal("w should toggle the waveform")
	}
	if s.Key('x') {
		t.Fatal("x is not bound")
	}

	help := s.HelpText()
	for _, l := range []string{"d - Next Visualiser", "?/h - Help toggle", "i - Info toggle"} {
		if !strings.Contains(help, l) {
			t.Fatal("help should list", l, help)
		}
	}
}

func TestInfoText(t *testing.T) {
	s := newSession()
	s.cc(100, 90)
	s.cc(110, 127)

	info := s.InfoText()
	for _, l := range []string{
		"Visualiser = Oblivion",
		"Post Shader = brcosa X = 160 Y = 120",
		"Deck A is Playing fader = 90 filter = 0.00",
		"Deck D is Paused fader = 0 filter = 0.00",
	} {
		if !strings.Contains(info, l) {
			t.Fatal("info should contain", l, info)
		}
	}
}

func TestFrameOrder(t *testing.T) {
	s := newSession()
	for _, cc := range []int{29, 26, 64, 65, 61} {
		s.cc(cc, 127)
	}
	s.cc(100, 127)
	s.cc(110, 127)
	s.cc(105, 127)
	s.Key('i')

	f := s.Frame(time.Second)

	exp := []string{shader.SobelPass, shader.VHSGlitchPass, "brcosa", shader.BlurPass}
	if !reflect.DeepEqual(f.Passes(), exp) {
		t.Fatal("unexpected passes", f.Passes())
	}

	if len(f.Layers) != 7 {
		t.Fatal("expected 7 layers, got", len(f.Layers))
	}
	for i, l := range f.Layers[:2] {
		if l.Kind != scene.ImageLayer || l.Via == nil || l.Via.Name != shader.KaleidoscopePass {
			t.Fatal("layer", i, "should be drawn through the kaleidoscope")
		}
	}
	last := f.Layers[len(f.Layers)-1]
	if last.Kind != scene.ImageLayer || last.Via != nil {
		t.Fatal("text should be drawn last without a shader")
	}
	if f.Pass(shader.BlurPass).Uniforms.Float("blurDegree") != 8 {
		t.Fatal("blur should follow the filter", f.Pass(shader.BlurPass).Uniforms)
	}
}

func TestRender(t *testing.T) {
	s := newSession()
	s.Palette.ToggleBlackOrWhite()
	r := scene.NewSoftware(width, height)

	for i := 0; i < 3; i++ {
		if err := s.Render(r, time.Duration(i)*time.Second/60); err != nil {
			t.Fatal(err)
		}
	}
	if got := r.Image().RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatal("expected a white background, got", got)
	}
	if math.Abs(s.FPS()-60) > 1 || s.Frames() != 3 {
		t.Fatal("unexpected frame rate", s.FPS(), s.Frames())
	}

	s.Key('d')
	s.Key('d')
	f := s.Frame(time.Second)
	if f.Pass("candywarp") == nil || f.Count != 3 {
		t.Fatal("expected the candywarp pass on frame 3")
	}
}

func TestGraphQL(t *testing.T) {
	s := newSession()
	schema, err := s.Schema()
	if err != nil {
		t.Fatal(err)
	}

	res := Query(schema, `mutation { cc(number: 100, value: 90) }`, nil)
	if len(res.Errors) > 0 {
		t.Fatal(res.Errors)
	}
	if res.Data.(map[string]interface{})["cc"] != true {
		t.Fatal("cc should report it was handled", res.Data)
	}
	res = Query(schema, `mutation { cc(number: 7, value: 90) }`, nil)
	if res.Data.(map[string]interface{})["cc"] != false {
		t.Fatal("unbound cc should report false", res.Data)
	}

	res = Query(schema, `{ status { visualizer postEnabled decks { id volume status } } }`, nil)
	if len(res.Errors) > 0 {
		t.Fatal(res.Errors)
	}
	st := res.Data.(map[string]interface{})["status"].(map[string]interface{})
	if st["visualizer"] != "Oblivion" || st["postEnabled"] != false {
		t.Fatal("unexpected status", st)
	}
	decks := st["decks"].([]interface{})
	a := decks[0].(map[string]interface{})
	if len(decks) != 4 || a["id"] != "A" || a["volume"] != 90 {
		t.Fatal("unexpected decks", decks)
	}
}
