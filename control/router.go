// Package control turns controller input into state changes. MIDI control
// change messages are dispatched through a fixed table indexed by CC number.
package control

import (
	"sync"

	"github.com/golang/glog"
)

// Handler receives the value of a control change, clamped to [0,127].
type Handler func(value int)

type binding struct {
	name    string
	handler Handler
}

// Slots is the size of the CC table.
const Slots = 256

// Router dispatches control changes on one MIDI channel to the handler bound
// to their CC number. Unbound numbers are ignored.
type Router struct {
	channel int

	mu    sync.RWMutex
	table [Slots]binding
}

// NewRouter creates a router listening on the given 0-based MIDI channel.
func NewRouter(channel int) *Router {
	return &Router{channel: channel}
}

// Channel is the 0-based channel the router listens on.
func (r *Router) Channel() int {
	return r.channel
}

// Bind attaches a named handler to a CC number, replacing any previous
// binding. Out of range numbers are logged and ignored.
func (r *Router) Bind(cc int, name string, h Handler) {
	if cc < 0 || cc >= Slots {
		glog.Warningf("control: cannot bind %q to cc %d", name, cc)
		return
	}
	r.mu.Lock()
	r.table[cc] = binding{name: name, handler: h}
	r.mu.Unlock()
}

// BindRange binds consecutive CC numbers starting at first, one per index,
// as used for per-deck controls.
func (r *Router) BindRange(first, n int, name func(i int) string, h func(i, value int)) {
	for i := 0; i < n; i++ {
		i := i
		r.Bind(first+i, name(i), func(v int) { h(i, v) })
	}
}

// Bound returns the name of the handler bound to cc.
func (r *Router) Bound(cc int) (string, bool) {
	if cc < 0 || cc >= Slots {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	b := r.table[cc]
	return b.name, b.handler != nil
}

// Handle dispatches one control change. Messages on other channels and
// unbound CC numbers are no-ops. It reports whether a handler ran.
func (r *Router) Handle(channel, cc, value int) bool {
	if channel != r.channel {
		return false
	}
	if cc < 0 || cc >= Slots {
		glog.V(2).Infof("control: cc %d out of range", cc)
		return false
	}

	r.mu.RLock()
	b := r.table[cc]
	r.mu.RUnlock()

	if b.handler == nil {
		glog.V(3).Infof("control: cc %d unbound (value %d)", cc, value)
		return false
	}

	if value < 0 {
		value = 0
	} else if value > 127 {
		value = 127
	}
	glog.V(2).Infof("control: cc %d %s = %d", cc, b.name, value)
	b.handler(value)
	return true
}
