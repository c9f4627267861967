// Package backoff implements retry delays.
package backoff

import (
	"context"
	"time"
)

// FF is set to Fast Forward time during testing.
// When true delays are 100 times shorter.
var FF bool

// NewExponential returns an exponential Wait.
// First it waits 0.1 sec then 0.2 etc, wait time is capped at max.
//
// Example, limit by number of retries:
//
//	for exp := backoff.NewExponential(10 * time.Second); exp.Retries() < 10; {
//		if try() == nil {
//			break
//		}
//		if err := exp.Wait(ctx); err != nil {
//			return err
//		}
//	}
func NewExponential(max time.Duration) *Exponential {
	if max == 0 {
		max = 10 * time.Second
	}
	return &Exponential{
		max:    max,
		factor: 1,
	}
}

// Exponential wait.
type Exponential struct {
	// max wait time
	max time.Duration
	// wait factor
	factor int64
	// number of retries so far
	retries int
}

// Next returns the next delay and advances the receiver.
func (ex *Exponential) Next() time.Duration {
	d := ex.factor * 100 * time.Millisecond.Nanoseconds()
	if d > ex.max.Nanoseconds() || ex.factor < 0 {
		d = ex.max.Nanoseconds()
	} else {
		ex.factor <<= 1
	}
	if FF {
		d /= 100
	}
	ex.retries++
	return time.Duration(d)
}

// Wait exponentially longer on each invocation with a limit of max time.
// It returns ctx.Err() when ctx is done before the wait is over.
func (ex *Exponential) Wait(ctx context.Context) error {
	t := time.NewTimer(ex.Next())
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Retries returns the number of retries so far.
func (ex *Exponential) Retries() int {
	return ex.retries
}
