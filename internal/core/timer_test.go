package core

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStep(tps int) (*FixedStep, *fakeClock) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	fs := NewFixedStep(tps)
	fs.now = clock.now
	return fs, clock
}

func TestFixedStepFirstCallSteps(t *testing.T) {
	fs, _ := newTestStep(10)
	if n := fs.Due(); n != 1 {
		t.Fatalf("first Due = %d, want 1", n)
	}
	if n := fs.Due(); n != 0 {
		t.Fatalf("second Due without elapsed time = %d", n)
	}
}

func TestFixedStepInterval(t *testing.T) {
	fs, clock := newTestStep(10)
	fs.Due()
	clock.advance(50 * time.Millisecond)
	if n := fs.Due(); n != 0 {
		t.Fatal("stepped after half an interval")
	}
	clock.advance(50 * time.Millisecond)
	if n := fs.Due(); n != 1 {
		t.Fatalf("Due after a full interval = %d", n)
	}
	if fs.Interval() != 100*time.Millisecond {
		t.Fatalf("interval = %v", fs.Interval())
	}
}

func TestFixedStepDueCatchesUpWithCap(t *testing.T) {
	fs, clock := newTestStep(20)
	if n := fs.Due(); n != 1 {
		t.Fatalf("first Due = %d, want 1", n)
	}
	clock.advance(160 * time.Millisecond)
	if n := fs.Due(); n != 3 {
		t.Fatalf("Due after 3.2 intervals = %d, want 3", n)
	}
	clock.advance(40 * time.Millisecond)
	if n := fs.Due(); n != 1 {
		t.Fatalf("leftover time not carried, Due = %d", n)
	}
	clock.advance(10 * time.Second)
	if n := fs.Due(); n != 5 {
		t.Fatalf("stalled Due = %d, want cap 5", n)
	}
	if n := fs.Due(); n != 0 {
		t.Fatalf("backlog not dropped after cap, Due = %d", n)
	}
}

func TestFixedStepDefaultsTPS(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.Interval() != time.Second/60 {
		t.Fatalf("default interval = %v", fs.Interval())
	}
}
