package watch

import "sync"

// Switcher debounces theme observations: a switch action fires if and only
// if the new observation differs from the last applied state, or no prior
// state exists yet. At most one action fires per observation.
type Switcher struct {
	mu       sync.Mutex
	known    bool
	dark     bool
	setDark  func()
	setLight func()
}

// NewSwitcher creates a Switcher with no prior state, so the first
// observation always fires.
func NewSwitcher(setDark, setLight func()) *Switcher {
	return &Switcher{setDark: setDark, setLight: setLight}
}

// Apply compares the observation against the stored state and invokes the
// matching switch action on change. It reports whether an action fired.
// The lock is held through the action so concurrent late probe results
// cannot interleave an action with a newer state.
func (s *Switcher) Apply(isDark bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.known && s.dark == isDark {
		return false
	}

	s.known = true
	s.dark = isDark

	if isDark {
		s.setDark()
	} else {
		s.setLight()
	}
	return true
}

// Current returns the last applied state and whether one exists.
func (s *Switcher) Current() (isDark, known bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark, s.known
}
