// Package assets loads the images shipped next to the show: hotcue packs and
// gradient strips.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	xdraw "golang.org/x/image/draw"

	"github.com/peragwin/spacerobot/audio/util"
	"github.com/peragwin/spacerobot/deck"
	"github.com/peragwin/spacerobot/overlay"
)

// ErrNoHotcuePacks is returned when no directory holds a usable pack.
var ErrNoHotcuePacks = errors.New("no hotcue packs found")

// PackShapeError rejects a hotcue pack without enough images.
type PackShapeError struct {
	Dir   string
	Found int
}

func (e *PackShapeError) Error() string {
	return fmt.Sprintf("hotcue pack %s has %d images, need %d", e.Dir, e.Found, deck.Slots)
}

// DefaultRampSize is the length of the built-in gradient.
const DefaultRampSize = 256

// LoadHotcuePacks loads every directory in dir whose name starts with
// "hotcue" as a pack of images, scaled to width keeping their aspect. The
// first deck.Slots PNG files by name are used; packs with fewer are skipped
// with a warning.
func LoadHotcuePacks(dir string, width int) ([]overlay.Pack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var packs []overlay.Pack
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), "hotcue") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		p, err := loadPack(path, width)
		if err != nil {
			glog.Warningf("skipping hotcue pack: %v", err)
			continue
		}
		glog.Infof("loaded hotcue pack %s", path)
		packs = append(packs, p)
	}

	if len(packs) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoHotcuePacks)
	}
	return packs, nil
}

func loadPack(dir string, width int) (overlay.Pack, error) {
	var p overlay.Pack

	files, err := pngs(dir)
	if err != nil {
		return p, err
	}
	if len(files) < deck.Slots {
		return p, &PackShapeError{Dir: dir, Found: len(files)}
	}

	for i := range p {
		img, err := readPNG(files[i])
		if err != nil {
			return p, err
		}
		p[i] = resizeWidth(img, width)
	}
	return p, nil
}

// LoadGradients reads every PNG in dir/gradients as a colour ramp taken from
// its first row. Without any, a single built-in ramp is returned.
func LoadGradients(dir string) []util.Gradient {
	files, err := pngs(filepath.Join(dir, "gradients"))
	if err != nil {
		glog.Warningf("reading gradients: %v", err)
	}

	var grads []util.Gradient
	for _, f := range files {
		img, err := readPNG(f)
		if err != nil {
			glog.Warningf("skipping gradient: %v", err)
			continue
		}
		if g := util.GradientFromImage(img); len(g) > 0 {
			grads = append(grads, g)
		}
	}

	if len(grads) == 0 {
		glog.Warning("no gradients found, using the default ramp")
		grads = append(grads, util.NewColorMap().Ramp(DefaultRampSize))
	}
	return grads
}

// pngs lists the PNG files in dir sorted by name.
func pngs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

func readPNG(path string) (image.Image, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	img, err := png.Decode(fp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func resizeWidth(img image.Image, width int) *image.RGBA {
	b := img.Bounds()
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
