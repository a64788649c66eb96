package connectivity

import (
	"context"
	"testing"
	"time"
)

type testLogger struct{}

func (testLogger) Info(string, ...any)  {}
func (testLogger) Debug(string, ...any) {}
func (testLogger) Warn(string, ...any)  {}
func (testLogger) Error(string, ...any) {}

func TestStep_FiresOnRegainedConnectivity(t *testing.T) {
	var fired int
	w := NewWatcher("http://probe.invalid", time.Second, func(context.Context) {
		fired++
	}, testLogger{})

	probeResult := true
	w.probe = func() bool { return probeResult }
	ctx := context.Background()

	// Online from the start: no transition, no callback.
	w.step(ctx)
	if fired != 0 {
		t.Fatalf("callback fired %d times while staying online", fired)
	}

	// Going offline does not fire either.
	probeResult = false
	w.step(ctx)
	w.step(ctx)
	if fired != 0 {
		t.Fatalf("callback fired %d times while offline", fired)
	}

	// The offline-to-online transition fires exactly once.
	probeResult = true
	w.step(ctx)
	if fired != 1 {
		t.Fatalf("callback fired %d times on regained connectivity, want 1", fired)
	}
	w.step(ctx)
	if fired != 1 {
		t.Errorf("callback fired again without a new transition")
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	w := NewWatcher("http://probe.invalid", time.Millisecond, func(context.Context) {}, testLogger{})
	w.probe = func() bool { return true }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancel")
	}
}
