// Spacerobot is the performance visualizer: it reacts to the line input (or
// a WAV file) and is played live from a DJ controller over MIDI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/golang/glog"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/peragwin/spacerobot/assets"
	"github.com/peragwin/spacerobot/audio"
	"github.com/peragwin/spacerobot/config"
	"github.com/peragwin/spacerobot/control"
	"github.com/peragwin/spacerobot/gfx"
	"github.com/peragwin/spacerobot/scene"
	"github.com/peragwin/spacerobot/session"
)

var (
	configPath = flag.String("config", "config.json", "show configuration file")
	assetsDir  = flag.String("assets", "data", "directory holding the hotcue packs and gradients")
	shadersDir = flag.String("shaders", "", "directory of .frag files replacing the built-in shaders")
	wavPath    = flag.String("wav", "", "loop this WAV file instead of reading the line input")
	headless   = flag.Bool("headless", false, "run without initializing OpenGL display")
	httpAddr   = flag.String("http", "", "serve the GraphQL API on this address, e.g. :8080")
	frameRate  = flag.Int("frame-rate", 60, "frame rate to target")
	devices    = flag.Bool("devices", false, "list the audio and MIDI input devices and exit")
)

func init() {
	// glfw must run on the main thread
	runtime.LockOSThread()
}

func main() {
	flag.Parse()

	if *devices {
		listDevices()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		glog.Fatalf("error loading config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	width, height := cfg.Screen.Width, cfg.Screen.Height
	var g *gfx.Context
	if !*headless {
		// The graphics have to be the first thing we initialize on macOS.
		sources, err := gfx.Sources(*shadersDir)
		if err != nil {
			glog.Fatalf("error loading shaders: %v", err)
		}
		wc := &gfx.WindowConfig{
			Width:      width,
			Height:     height,
			Title:      "Giant Space Robot Visualizer",
			Fullscreen: cfg.Screen.Fullscreen,
			Display:    cfg.Screen.Display,
		}
		if g, err = gfx.NewContext(ctx, wc, sources); err != nil {
			glog.Fatalf("error creating display: %v", err)
		}
		width, height = wc.Width, wc.Height
	} else if width == 0 || height == 0 {
		width, height = 1920, 1080
	}

	packs, err := assets.LoadHotcuePacks(*assetsDir, width)
	if err != nil {
		glog.Fatalf("error loading hotcues: %v", err)
	}

	in := audio.NewInput(audio.DefaultConfig.BlockSize)
	sampleRate := startAudio(ctx, in)

	s := session.New(in, session.Options{
		Width:      width,
		Height:     height,
		SampleRate: sampleRate,
		FrameRate:  *frameRate,
		Channel:    cfg.MIDIChannel,
		WordPacks:  cfg.WordPacks,
		Palettes:   cfg.Palettes,
		Hotcues:    packs,
		Gradients:  assets.LoadGradients(*assetsDir),
	})

	defer midi.CloseDriver()
	l, err := control.Listen(cfg.MIDIDevices, s.Router)
	if err != nil {
		glog.Warningf("%v, keyboard only. Available ports: %v", err, control.InPorts())
	}
	defer l.Stop()

	if *httpAddr != "" {
		if err := serve(*httpAddr, s); err != nil {
			glog.Fatalf("error starting http: %v", err)
		}
	}

	start := time.Now()
	if *headless {
		runHeadless(ctx, s, scene.NewSoftware(width, height), start)
		return
	}

	g.Window.OnKey(func(r rune) {
		s.Key(r)
	})
	g.EventLoop(func(c *gfx.Context) {
		if err := s.Render(c, time.Since(start)); err != nil {
			glog.Errorf("render: %v", err)
		}
	})
}

// startAudio feeds in from the WAV file if one is given, else from the line
// input. It returns the sample rate of the source. When neither can be
// opened in stays silent.
func startAudio(ctx context.Context, in *audio.Input) float64 {
	cfg := audio.DefaultConfig

	if *wavPath != "" {
		clip, err := audio.OpenWav(*wavPath)
		if err == nil {
			glog.Infof("audio: looping %s, %d channels at %v Hz", *wavPath, clip.Channels, clip.SampleRate)
			audio.Feed(ctx.Done(), clip.Play(ctx, cfg.BlockSize), clip.Channels, in)
			return clip.SampleRate
		}
		glog.Warningf("audio: %v, using the line input", err)
	}

	src, errc := audio.NewSource(ctx, &cfg)
	go func() {
		if err, ok := <-errc; ok {
			glog.Warningf("audio: %v, continuing without sound", err)
		}
	}()
	audio.Feed(ctx.Done(), src, cfg.Channels, in)
	return cfg.SampleRate
}

func listDevices() {
	defer midi.CloseDriver()
	desc, err := audio.DescribeDevices()
	if err != nil {
		glog.Errorf("audio: %v", err)
	}
	fmt.Print(desc)
	fmt.Println("MIDI inputs:")
	for _, p := range control.InPorts() {
		fmt.Println("\t" + p)
	}
}

func runHeadless(ctx context.Context, s *session.Session, r *scene.Software, start time.Time) {
	tick := time.NewTicker(time.Second / time.Duration(*frameRate))
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			glog.Infof("stopping after %d frames, %d passes skipped", s.Frames(), r.Skipped())
			return
		case <-tick.C:
			if err := s.Render(r, time.Since(start)); err != nil {
				glog.Errorf("render: %v", err)
			}
		}
	}
}
