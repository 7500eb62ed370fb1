package alarm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestDeliveryHoldFirstReleaseWins(t *testing.T) {
	hold := newDeliveryHold()

	var wg sync.WaitGroup
	wins := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- hold.release(FireDelivered, nil)
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for w := range wins {
		if w {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one winning release, got %d", count)
	}

	if hold.release(FireTimedOut, errors.New("late")) {
		t.Error("release after the first must be ignored")
	}
	outcome, err := hold.wait(context.Background(), time.Second)
	if outcome != FireDelivered || err != nil {
		t.Errorf("expected delivered/nil, got %q/%v", outcome, err)
	}
}

func TestDeliveryHoldTimeout(t *testing.T) {
	hold := newDeliveryHold()

	start := time.Now()
	outcome, err := hold.wait(context.Background(), 15*time.Millisecond)
	if outcome != FireTimedOut || err != nil {
		t.Errorf("expected timed_out/nil, got %q/%v", outcome, err)
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Errorf("released too early: %v", elapsed)
	}

	if hold.release(FireDelivered, nil) {
		t.Error("completion after timeout must not release again")
	}
}

func TestDeliveryHoldContextCancelled(t *testing.T) {
	hold := newDeliveryHold()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := hold.wait(ctx, time.Minute)
	if outcome != FireAbandoned {
		t.Errorf("expected abandoned, got %q", outcome)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
