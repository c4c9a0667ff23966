// Ccmonitor prints the control changes arriving from the configured MIDI
// devices next to the show control each one is bound to. It is used to
// check a controller mapping without starting the visualizer.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/golang/glog"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/peragwin/spacerobot/audio"
	"github.com/peragwin/spacerobot/config"
	"github.com/peragwin/spacerobot/control"
	"github.com/peragwin/spacerobot/session"
)

var (
	configPath = flag.String("config", "config.json", "show configuration file")
	list       = flag.Bool("list", false, "list the MIDI input ports and exit")
	device     = flag.String("device", "", "watch this port instead of the configured devices")
)

func main() {
	flag.Parse()
	defer midi.CloseDriver()

	if *list {
		for _, p := range control.InPorts() {
			fmt.Println(p)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		glog.Fatalf("error loading config: %v", err)
	}

	// a session with the configured channel knows every binding name
	s := session.New(audio.NewInput(1024), session.Options{
		Width:     cfg.Screen.Width,
		Height:    cfg.Screen.Height,
		Channel:   cfg.MIDIChannel,
		WordPacks: cfg.WordPacks,
		Palettes:  cfg.Palettes,
	})

	devices := cfg.MIDIDevices
	if *device != "" {
		devices = []string{*device}
	}

	var stops []func()
	for _, name := range devices {
		port, err := control.FindInPort(name)
		if err != nil {
			glog.Warningf("%v", err)
			continue
		}
		stop, err := midi.ListenTo(port, func(msg midi.Message, timestampms int32) {
			var ch, cc, val uint8
			if !msg.GetControlChange(&ch, &cc, &val) {
				return
			}
			fmt.Println(describe(s.Router, int(ch), int(cc), int(val)))
		})
		if err != nil {
			glog.Warningf("listening on %s: %v", port, err)
			continue
		}
		fmt.Printf("listening on %s, channel %d\n", port, cfg.MIDIChannel+1)
		stops = append(stops, stop)
	}
	if len(stops) == 0 {
		glog.Fatalf("%v. Available ports: %s", control.ErrNoDevices, strings.Join(control.InPorts(), ", "))
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
	for _, stop := range stops {
		stop()
	}
}

// describe formats one control change. Channels are shown 1-based as on
// the controller.
func describe(r *control.Router, ch, cc, val int) string {
	name, ok := r.Bound(cc)
	switch {
	case ch != r.Channel():
		name = fmt.Sprintf("(ignored, listening on channel %d)", r.Channel()+1)
	case !ok:
		name = "(unbound)"
	}
	return fmt.Sprintf("ch %2d  cc %3d  value %3d  %s", ch+1, cc, val, name)
}
