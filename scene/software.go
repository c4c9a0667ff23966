package scene

import (
	"image"
	"image/draw"

	"github.com/golang/glog"
	"github.com/phrozen/blend"
)

// Software flattens frames on the CPU. Image layers are composited; shader
// and filter passes have no CPU implementation and are skipped. It backs
// headless runs and tests.
type Software struct {
	img     *image.RGBA
	skipped int
}

// NewSoftware creates a software renderer of the given size.
func NewSoftware(width, height int) *Software {
	return &Software{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Render implements Renderer.
func (s *Software) Render(f *Frame) error {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(f.Background), image.Point{}, draw.Src)

	for _, l := range f.Layers {
		switch l.Kind {
		case ImageLayer:
			switch l.Blend {
			case Screen:
				blend.BlendImage(s.img, l.Image, blend.Screen)
			default:
				draw.Draw(s.img, s.img.Bounds(), l.Image, image.Point{}, draw.Over)
			}
		default:
			s.skipped++
			if glog.V(3) {
				glog.Infof("software: skipping pass %s", l.Pass.Name)
			}
		}
	}
	return nil
}

// Image returns the last rendered frame.
func (s *Software) Image() *image.RGBA {
	return s.img
}

// Skipped counts the passes skipped since creation.
func (s *Software) Skipped() int {
	return s.skipped
}
