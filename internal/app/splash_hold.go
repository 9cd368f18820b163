package app

import "sync"

// SplashHold keeps the splash presentation up until the lock preference
// has been resolved. There is no timeout: the loader always resolves.
type SplashHold struct {
	once     sync.Once
	released chan struct{}
}

// NewSplashHold creates a SplashHold that is holding.
func NewSplashHold() *SplashHold {
	return &SplashHold{released: make(chan struct{})}
}

// ShouldHold is polled by the presentation layer on every tick.
func (s *SplashHold) ShouldHold() bool {
	select {
	case <-s.released:
		return false
	default:
		return true
	}
}

// Release ends the hold. Extra calls are no-ops.
func (s *SplashHold) Release() {
	s.once.Do(func() { close(s.released) })
}

// Released is closed once the hold ends.
func (s *SplashHold) Released() <-chan struct{} {
	return s.released
}
