package control

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang/glog"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// ErrNoDevices is returned by Listen when none of the configured devices
// could be opened.
var ErrNoDevices = errors.New("no MIDI input devices available")

// FindInPort returns the first input port whose name contains substr,
// ignoring case.
func FindInPort(substr string) (drivers.In, error) {
	lower := strings.ToLower(substr)
	for _, port := range midi.GetInPorts() {
		if strings.Contains(strings.ToLower(port.String()), lower) {
			return port, nil
		}
	}
	return nil, fmt.Errorf("no MIDI input port matching %q", substr)
}

// HandleMessage dispatches msg if it is a control change.
func (r *Router) HandleMessage(msg midi.Message) bool {
	var ch, cc, val uint8
	if !msg.GetControlChange(&ch, &cc, &val) {
		return false
	}
	return r.Handle(int(ch), int(cc), int(val))
}

// Listener owns the open MIDI input ports.
type Listener struct {
	Ports []string
	stops []func()
}

// Listen opens every configured device and feeds its control changes to r.
// Devices that cannot be found are logged; if none can be opened the
// returned error is ErrNoDevices and the Listener is empty but usable.
func Listen(devices []string, r *Router) (*Listener, error) {
	l := &Listener{}
	for _, name := range devices {
		if name == "" {
			continue
		}
		port, err := FindInPort(name)
		if err != nil {
			glog.Warningf("midi: %v", err)
			continue
		}
		stop, err := midi.ListenTo(port, func(msg midi.Message, timestampms int32) {
			r.HandleMessage(msg)
		})
		if err != nil {
			glog.Warningf("midi: listening on %s: %v", port, err)
			continue
		}
		glog.Infof("midi: listening on %s", port)
		l.Ports = append(l.Ports, port.String())
		l.stops = append(l.stops, stop)
	}

	if len(l.stops) == 0 {
		return l, ErrNoDevices
	}
	return l, nil
}

// Stop closes every listener.
func (l *Listener) Stop() {
	for _, stop := range l.stops {
		stop()
	}
	l.stops = nil
}

// InPorts lists the names of the available input ports.
func InPorts() []string {
	var names []string
	for _, p := range midi.GetInPorts() {
		names = append(names, p.String())
	}
	return names
}
