package alarm

import (
	"context"
	"sync"
	"time"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
)

// deliveryHold keeps a firing open until the alert finishes or the safety
// timeout elapses. The first release wins; later ones are ignored.
type deliveryHold struct {
	once     sync.Once
	released chan struct{}
	outcome  FireOutcome
	err      error
}

func newDeliveryHold() *deliveryHold {
	return &deliveryHold{released: make(chan struct{})}
}

func (h *deliveryHold) release(outcome FireOutcome, err error) bool {
	first := false
	h.once.Do(func() {
		h.outcome = outcome
		h.err = err
		close(h.released)
		first = true
	})
	return first
}

func (h *deliveryHold) wait(ctx context.Context, timeout time.Duration) (FireOutcome, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-h.released:
	case <-timer.C:
		h.release(FireTimedOut, nil)
	case <-ctx.Done():
		h.release(FireAbandoned, ctx.Err())
	}
	return h.outcome, h.err
}

// deliver presents the alert and blocks until the hold is released.
func deliver(ctx context.Context, presenter domain.AlertPresenter, alert domain.Alert, timeout time.Duration) (FireOutcome, error) {
	hold := newDeliveryHold()
	done := presenter.Present(ctx, alert)

	go func() {
		select {
		case err := <-done:
			if err != nil {
				hold.release(FireDeliveryFailed, err)
				return
			}
			hold.release(FireDelivered, nil)
		case <-hold.released:
		}
	}()

	return hold.wait(ctx, timeout)
}
