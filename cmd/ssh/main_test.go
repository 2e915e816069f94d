package main

import (
	"sync"
	"testing"
	"time"
)

func TestSizeTracker(t *testing.T) {
	s := newSizeTracker(80, 24)
	s.update(120, 40)

	w, h, err := s.getSize()
	if err != nil {
		t.Fatal(err)
	}
	if w != 120 || h != 40 {
		t.Errorf("getSize() = %dx%d, want 120x40", w, h)
	}
}

func TestWaitTimeout(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	start := time.Now()
	waitTimeout(&wg, 50*time.Millisecond)
	if time.Since(start) < 50*time.Millisecond {
		t.Error("waitTimeout returned before the timeout with a pending session")
	}

	wg.Done()
	start = time.Now()
	waitTimeout(&wg, time.Second)
	if time.Since(start) > 500*time.Millisecond {
		t.Error("waitTimeout did not return once sessions finished")
	}
}
