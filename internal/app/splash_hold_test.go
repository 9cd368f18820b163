package app

import "testing"

func TestSplashHold(t *testing.T) {
	s := NewSplashHold()

	if !s.ShouldHold() {
		t.Error("new SplashHold is not holding")
	}
	select {
	case <-s.Released():
		t.Fatal("Released() closed before Release")
	default:
	}

	s.Release()
	s.Release()

	if s.ShouldHold() {
		t.Error("SplashHold still holding after Release")
	}
	select {
	case <-s.Released():
	default:
		t.Fatal("Released() not closed after Release")
	}
}
