package event_test

import (
	"testing"

	"github.com/sabouaram/linxipc/event"
)

func TestWriteReadRoundTrip(t *testing.T) {
	s, err := event.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	if err := s.Write(); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := s.Read(); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
}

func TestReadOnEmptyFails(t *testing.T) {
	s, err := event.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	if err := s.Read(); err != event.ErrWouldBlock {
		t.Fatalf("Read() on empty counter error = %v, want ErrWouldBlock", err)
	}
}

func TestMonotonicBetweenOperations(t *testing.T) {
	s, err := event.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	for i := 0; i < 5; i++ {
		if err := s.Write(); err != nil {
			t.Fatalf("Write() #%d error = %v", i, err)
		}
	}
	for i := 0; i < 5; i++ {
		if err := s.Read(); err != nil {
			t.Fatalf("Read() #%d error = %v", i, err)
		}
	}
	if err := s.Read(); err != event.ErrWouldBlock {
		t.Fatalf("Read() after draining = %v, want ErrWouldBlock", err)
	}
}

func TestClearDrainsToZero(t *testing.T) {
	s, err := event.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	for i := 0; i < 3; i++ {
		_ = s.Write()
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := s.Read(); err != event.ErrWouldBlock {
		t.Fatalf("Read() after Clear() = %v, want ErrWouldBlock", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	s, err := event.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}

func TestFDStableAcrossOperations(t *testing.T) {
	s, err := event.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	fd := s.FD()
	_ = s.Write()
	if s.FD() != fd {
		t.Error("FD() changed across operations")
	}
}
