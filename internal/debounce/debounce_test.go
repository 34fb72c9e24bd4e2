package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

// Rapid calls inside the interval must collapse into one execution, and
// only the last scheduled function may run.
func TestCollapsesRapidCalls(t *testing.T) {
	d := New(30 * time.Millisecond)

	var ran atomic.Int32
	var last atomic.Int32
	for i := 1; i <= 5; i++ {
		i := i
		d.Call(func() {
			ran.Add(1)
			last.Store(int32(i))
		})
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := ran.Load(); got != 1 {
		t.Fatalf("expected exactly 1 execution, got %d", got)
	}
	if got := last.Load(); got != 5 {
		t.Fatalf("expected last call to win, got call %d", got)
	}
}

func TestCancelDropsPending(t *testing.T) {
	d := New(20 * time.Millisecond)

	var ran atomic.Int32
	d.Call(func() { ran.Add(1) })
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	if got := ran.Load(); got != 0 {
		t.Fatalf("expected cancelled call not to run, got %d executions", got)
	}
}

func TestStopIsTerminalAndIdempotent(t *testing.T) {
	d := New(10 * time.Millisecond)

	var ran atomic.Int32
	d.Call(func() { ran.Add(1) })
	d.Stop()
	d.Stop()
	d.Call(func() { ran.Add(1) })

	time.Sleep(50 * time.Millisecond)
	if got := ran.Load(); got != 0 {
		t.Fatalf("expected no executions after Stop, got %d", got)
	}
}

func TestZeroIntervalRunsImmediately(t *testing.T) {
	d := New(0)

	done := make(chan struct{})
	d.Call(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected immediate execution with zero interval")
	}
}
