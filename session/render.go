package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/peragwin/spacerobot/scene"
	"github.com/peragwin/spacerobot/shader"
)

// clock counts frames and keeps a smoothed frame rate.
type clock struct {
	frames int
	last   time.Duration
	fps    float64
}

func (c *clock) tick(t time.Duration) {
	if c.frames > 0 && t > c.last {
		fps := float64(time.Second) / float64(t-c.last)
		if c.fps == 0 {
			c.fps = fps
		} else {
			c.fps = 0.9*c.fps + 0.1*fps
		}
	}
	c.last = t
	c.frames++
}

// Frame composes the frame shown t after the show started. It must be called
// from a single goroutine.
func (s *Session) Frame(t time.Duration) *scene.Frame {
	s.mu.RLock()
	count := s.clock.frames
	s.mu.RUnlock()
	f := scene.NewFrame(s.Width, s.Height, t, count)
	fl := s.flags()

	s.Palette.Draw(f)

	if fl.kaleidoscope {
		f.UseShader(shader.Kaleidoscope())
	}

	s.Hotcues.Draw(f)
	s.Visualizers.Draw(f)
	if fl.waveform {
		s.Waveform.Draw(f)
	}
	s.Words.Draw(f)

	if fl.delay {
		f.Filter(shader.Sobel(f))
	}
	if fl.slice {
		f.Filter(shader.VHSGlitch(f))
	}
	s.Post.Draw(f)
	if p := shader.Blur(s.Mixer.FilterIntensity()); p != nil {
		f.Filter(p)
	}

	f.UseShader(nil)
	s.drawText(f, fl)

	s.mu.Lock()
	s.clock.tick(t)
	s.mu.Unlock()
	return f
}

// Render composes the frame for t and hands it to r.
func (s *Session) Render(r scene.Renderer, t time.Duration) error {
	start := time.Now()
	f := s.Frame(t)
	if err := r.Render(f); err != nil {
		return err
	}
	if glog.V(3) {
		glog.Infof("frame %d: %d layers in %v", f.Count, len(f.Layers), time.Since(start))
	}
	return nil
}

// FPS is the measured frame rate.
func (s *Session) FPS() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clock.fps
}

// Frames is the number of frames composed so far.
func (s *Session) Frames() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clock.frames
}

// InfoText is the body of the info overlay.
func (s *Session) InfoText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Info\n------------\nFPS = %d\n", int(s.FPS()+0.5))
	fmt.Fprintf(&b, "Visualiser = %s\n\n", s.Visualizers.Name())
	fmt.Fprintf(&b, "Post Shader = %s\n", s.Post.Info())
	for _, st := range s.Mixer.States() {
		b.WriteString(st.Status())
		b.WriteByte('\n')
	}
	return b.String()
}

// HelpText is the body of the help overlay.
func (s *Session) HelpText() string {
	return "Help\n------------\n" + strings.Join(s.Keys.Help(), "\n") + "\n"
}

func (s *Session) drawText(f *scene.Frame, fl flags) {
	if !fl.info && !fl.help {
		return
	}
	for i := range s.text.Pix {
		s.text.Pix[i] = 0
	}
	col := scene.Gray(150, 255)
	if fl.info {
		scene.Text(s.text, 10, 30, col, lines(s.InfoText())...)
	}
	if fl.help {
		scene.Text(s.text, s.Width-200, 30, col, lines(s.HelpText())...)
	}
	f.Draw(s.text, scene.Over)
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
