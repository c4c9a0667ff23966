package deck

// Mixer aggregates the four decks. Its blur intensity is computed on demand
// from the decks, so it is always consistent with their latest state.
type Mixer struct {
	decks [Count]*Deck
}

// NewMixer creates the four decks.
func NewMixer() *Mixer {
	m := &Mixer{}
	for i := range m.decks {
		m.decks[i] = New(ID(i))
	}
	return m
}

// Deck returns the deck with the given id, or nil if id is out of range.
func (m *Mixer) Deck(id ID) *Deck {
	if id < A || id > D {
		return nil
	}
	return m.decks[id]
}

// Decks returns the decks in order A to D.
func (m *Mixer) Decks() []*Deck {
	return m.decks[:]
}

// FilterIntensity is the highest filter intensity among decks whose blur is
// engaged, or 0 if none are.
func (m *Mixer) FilterIntensity() float64 {
	max := 0.0
	for _, d := range m.decks {
		s := d.State()
		if s.BlurEngaged && s.Filter > max {
			max = s.Filter
		}
	}
	return max
}

// States snapshots every deck.
func (m *Mixer) States() []State {
	st := make([]State, len(m.decks))
	for i, d := range m.decks {
		st[i] = d.State()
	}
	return st
}
