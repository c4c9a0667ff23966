package control

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Keymap binds single keys to actions. It is the development fallback for
// when no MIDI controller is attached.
type Keymap struct {
	mu   sync.RWMutex
	keys map[rune]keyBinding
}

type keyBinding struct {
	help   string
	action func()
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{keys: make(map[rune]keyBinding)}
}

// Bind attaches an action to every key in keys.
func (k *Keymap) Bind(keys string, help string, action func()) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, r := range keys {
		k.keys[r] = keyBinding{help: help, action: action}
	}
}

// Press runs the action bound to r and reports whether there was one.
func (k *Keymap) Press(r rune) bool {
	k.mu.RLock()
	b, ok := k.keys[r]
	k.mu.RUnlock()
	if !ok {
		return false
	}
	b.action()
	return true
}

// Help lists the bindings, one "key - help" line each, sorted by key.
// Keys sharing an action are listed together.
func (k *Keymap) Help() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()

	byHelp := make(map[string][]string)
	for r, b := range k.keys {
		byHelp[b.help] = append(byHelp[b.help], string(r))
	}
	var lines []string
	for help, keys := range byHelp {
		sort.Strings(keys)
		lines = append(lines, fmt.Sprintf("%s - %s", strings.Join(keys, "/"), help))
	}
	sort.Strings(lines)
	return lines
}
