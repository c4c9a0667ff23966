package assets

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int, c color.RGBA) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		img.SetRGBA(i%w, i/w, c)
	}
	fp, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	if err := png.Encode(fp, img); err != nil {
		t.Fatal(err)
	}
}

func makePack(t *testing.T, dir string, n int) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		name := filepath.Join(dir, string(rune('a'+i))+".png")
		writePNG(t, name, 32, 16, color.RGBA{uint8(i * 20), 0, 0, 255})
	}
}

func TestLoadHotcuePacks(t *testing.T) {
	dir := t.TempDir()
	makePack(t, filepath.Join(dir, "hotcue_pack1"), 9)
	makePack(t, filepath.Join(dir, "hotcue_pack2"), 3)
	makePack(t, filepath.Join(dir, "gradients"), 8)
	if err := os.WriteFile(filepath.Join(dir, "hotcue_pack1", "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	packs, err := LoadHotcuePacks(dir, 64)
	if err != nil {
		t.Fatal(err)
	}
	if len(packs) != 1 {
		t.Fatal("expected only the complete pack, got", len(packs))
	}

	for i, img := range packs[0] {
		b := img.Bounds()
		if b.Dx() != 64 || b.Dy() != 32 {
			t.Fatal("image should be scaled to the display width keeping aspect", b)
		}
		r, _, _, _ := img.At(10, 10).RGBA()
		if uint8(r>>8) != uint8(i*20) {
			t.Fatal("images should load in name order")
		}
	}
}

func TestPackShape(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hotcue_small")
	makePack(t, dir, 7)

	_, err := loadPack(dir, 64)
	var shape *PackShapeError
	if !errors.As(err, &shape) || shape.Found != 7 {
		t.Fatal("expected a pack shape error, got", err)
	}
}

func TestNoHotcuePacks(t *testing.T) {
	dir := t.TempDir()
	makePack(t, filepath.Join(dir, "hotcue_pack1"), 2)

	_, err := LoadHotcuePacks(dir, 64)
	if !errors.Is(err, ErrNoHotcuePacks) {
		t.Fatal("expected ErrNoHotcuePacks, got", err)
	}

	if _, err := LoadHotcuePacks(filepath.Join(dir, "missing"), 64); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestLoadGradients(t *testing.T) {
	dir := t.TempDir()
	if g := LoadGradients(dir); len(g) != 1 || len(g[0]) != DefaultRampSize {
		t.Fatal("expected the default ramp")
	}

	gdir := filepath.Join(dir, "gradients")
	if err := os.MkdirAll(gdir, 0755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(gdir, "a.png"), 4, 1, color.RGBA{0, 0, 255, 255})
	writePNG(t, filepath.Join(gdir, "b.PNG"), 10, 2, color.RGBA{0, 255, 0, 255})
	if err := os.WriteFile(filepath.Join(gdir, "c.png"), []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}

	g := LoadGradients(dir)
	if len(g) != 2 {
		t.Fatal("expected two gradients, got", len(g))
	}
	if len(g[0]) != 4 || g[0][3] != (color.RGBA{0, 0, 255, 255}) {
		t.Fatal("unexpected first gradient", g[0])
	}
	if len(g[1]) != 10 {
		t.Fatal("gradient length should be the image width")
	}
}
