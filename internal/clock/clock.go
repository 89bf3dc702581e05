// Package clock abstracts time so the services' simulated latency can be
// injected and tests can run synchronously.
package clock

import (
	"context"
	"time"
)

// Clock supplies the current time and cancellable sleeps.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

// New returns a wall-clock implementation.
func New() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Fake is a manually advanced clock for tests. Sleep returns immediately and
// moves the current time forward.
type Fake struct {
	Current time.Time
}

// NewFake starts a fake clock at the given instant.
func NewFake(at time.Time) *Fake {
	return &Fake{Current: at}
}

func (f *Fake) Now() time.Time {
	return f.Current
}

func (f *Fake) Sleep(_ context.Context, d time.Duration) error {
	if d > 0 {
		f.Current = f.Current.Add(d)
	}
	return nil
}

// Advance moves the fake clock forward.
func (f *Fake) Advance(d time.Duration) {
	f.Current = f.Current.Add(d)
}
