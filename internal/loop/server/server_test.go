package server

import (
	"testing"
	"time"
)

func TestRegisterAndUnregister(t *testing.T) {
	s := NewServer()
	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")
	if a.ID == b.ID {
		t.Fatalf("duplicate client id %d", a.ID)
	}
	if s.ClientCount() != 2 {
		t.Fatalf("count = %d, want 2", s.ClientCount())
	}
	s.UnregisterClient(a.ID)
	s.UnregisterClient(a.ID) // twice is harmless
	if s.ClientCount() != 1 {
		t.Errorf("count = %d, want 1", s.ClientCount())
	}
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	s := NewServer()
	h := s.RegisterClient("carol")

	go func() {
		ev := <-h.EventsCh
		if ev.Type == EventServerShutdown {
			s.UnregisterClient(h.ID)
		}
	}()

	start := time.Now()
	if left := s.Shutdown(5 * time.Second); left != 0 {
		t.Errorf("clients left = %d, want 0", left)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("shutdown waited for the full timeout")
	}
}

func TestShutdownTimesOut(t *testing.T) {
	s := NewServer()
	s.RegisterClient("stubborn")
	if left := s.Shutdown(100 * time.Millisecond); left != 1 {
		t.Errorf("clients left = %d, want 1", left)
	}
}

func TestLateClientSeesShutdown(t *testing.T) {
	s := NewServer()
	s.Shutdown(0)
	h := s.RegisterClient("late")
	select {
	case ev := <-h.EventsCh:
		if ev.Type != EventServerShutdown {
			t.Errorf("event = %v", ev.Type)
		}
	default:
		t.Error("late client was not told about the shutdown")
	}
}
