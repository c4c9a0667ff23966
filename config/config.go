// Package config reads the JSON show configuration: display geometry, MIDI
// input, beat word packs and background palettes.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/golang/glog"

	"github.com/peragwin/spacerobot/audio/util"
)

// Screen describes the output display.
type Screen struct {
	Fullscreen bool `json:"fullscreen"`
	// Display is the monitor used in fullscreen mode, counted from 1.
	Display int `json:"displaynumber"`
	Width   int `json:"width"`
	Height  int `json:"height"`
}

// Config is the parsed show configuration.
type Config struct {
	Screen Screen
	// MIDIDevices are substrings of MIDI input port names to listen on.
	MIDIDevices []string
	// MIDIChannel is the 0-based channel controls are read from.
	MIDIChannel int
	WordPacks   [][]string
	Palettes    [][]color.RGBA
}

// MissingSectionError reports a required section absent from the file.
type MissingSectionError struct {
	Section string
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("config: missing section %q", e.Section)
}

// IsMissingSection reports whether err is caused by a missing section.
func IsMissingSection(err error) bool {
	var m *MissingSectionError
	return errors.As(err, &m)
}

// file mirrors the on-disk layout, where every section is a list of objects.
type file struct {
	Screensize []Screen `json:"screensize"`
	MIDIDevice []struct {
		Device string `json:"device"`
	} `json:"MIDIdevice"`
	MIDIChannel []struct {
		Channel int `json:"channel"`
	} `json:"MIDIchannel"`
	Wordpacks []wordpack `json:"wordpacks"`
	Palettes  []palette  `json:"palettes"`
}

type wordpack struct {
	Words []string `json:"words"`
}

type palette struct {
	Colours []string `json:"colours"`
}

// A section of lists that are all empty counts as missing.
func anyWords(packs []wordpack) bool {
	for _, p := range packs {
		if len(p.Words) > 0 {
			return true
		}
	}
	return false
}

func anyColours(palettes []palette) bool {
	for _, p := range palettes {
		if len(p.Colours) > 0 {
			return true
		}
	}
	return false
}

// Load reads the config file at path.
func Load(path string) (*Config, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	c, err := Parse(fp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a config from r.
func Parse(r io.Reader) (*Config, error) {
	var f file
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if len(f.Screensize) == 0 {
		return nil, &MissingSectionError{"screensize"}
	}
	if len(f.MIDIChannel) == 0 {
		return nil, &MissingSectionError{"MIDIchannel"}
	}
	if !anyWords(f.Wordpacks) {
		return nil, &MissingSectionError{"wordpacks"}
	}
	if !anyColours(f.Palettes) {
		return nil, &MissingSectionError{"palettes"}
	}

	c := &Config{Screen: f.Screensize[0]}
	if !c.Screen.Fullscreen && (c.Screen.Width <= 0 || c.Screen.Height <= 0) {
		return nil, fmt.Errorf("windowed mode needs a size, got %dx%d", c.Screen.Width, c.Screen.Height)
	}

	ch := f.MIDIChannel[0].Channel
	if ch < 1 || ch > 16 {
		return nil, fmt.Errorf("MIDI channel %d out of range 1-16", ch)
	}
	c.MIDIChannel = ch - 1

	for _, d := range f.MIDIDevice {
		if d.Device != "" {
			c.MIDIDevices = append(c.MIDIDevices, d.Device)
		}
	}
	if len(c.MIDIDevices) == 0 {
		glog.Warning("no MIDI device configured, keyboard control only")
	}

	for _, w := range f.Wordpacks {
		c.WordPacks = append(c.WordPacks, w.Words)
	}

	for i, p := range f.Palettes {
		cols := make([]color.RGBA, 0, len(p.Colours))
		for _, s := range p.Colours {
			col, err := util.ParseHex(s)
			if err != nil {
				return nil, fmt.Errorf("palette %d: %w", i, err)
			}
			cols = append(cols, col)
		}
		c.Palettes = append(c.Palettes, cols)
	}

	return c, nil
}
