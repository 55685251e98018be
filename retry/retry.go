// Package retry runs start-up probes (database connect, backend readiness)
// under exponential backoff.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	defaultInitInitialInterval = 500 * time.Millisecond
	defaultInitMultiplier      = 2.0
	defaultInitMaxInterval     = 5 * time.Second
	defaultInitRandomization   = 0.5
	defaultInitMaxElapsed      = 20 * time.Second
)

// Policy shapes the exponential backoff. Zero fields take the init defaults.
type Policy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsed      time.Duration
	// OnRetry, when set, is called after each failed attempt with the
	// error and the wait before the next one.
	OnRetry func(err error, next time.Duration)
}

// InitPolicy is the policy used by RetryInit.
func InitPolicy() Policy {
	return Policy{
		InitialInterval: defaultInitInitialInterval,
		MaxInterval:     defaultInitMaxInterval,
		MaxElapsed:      defaultInitMaxElapsed,
	}
}

func (p Policy) withDefaults() Policy {
	d := InitPolicy()
	if p.InitialInterval <= 0 {
		p.InitialInterval = d.InitialInterval
	}
	if p.MaxInterval <= 0 {
		p.MaxInterval = d.MaxInterval
	}
	if p.MaxElapsed <= 0 {
		p.MaxElapsed = d.MaxElapsed
	}
	return p
}

// PermanentError wraps a non-retryable error.
type PermanentError struct {
	err error
}

func (e PermanentError) Error() string {
	if e.err == nil {
		return "permanent error"
	}
	return e.err.Error()
}

func (e PermanentError) Unwrap() error { return e.err }

// Permanent marks an error as non-retryable.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	if IsPermanent(err) {
		return err
	}
	return PermanentError{err: err}
}

// IsPermanent reports whether err is marked as non-retryable.
func IsPermanent(err error) bool {
	var pe PermanentError
	if errors.As(err, &pe) {
		return true
	}

	var bpe *backoff.PermanentError
	return errors.As(err, &bpe)
}

// RetryInit retries fn with the init policy.
func RetryInit(ctx context.Context, fn func() error) error {
	return Do(ctx, InitPolicy(), fn)
}

// Do retries fn with exponential backoff until it succeeds, returns a
// permanent error, ctx ends, or p.MaxElapsed passes.
func Do(ctx context.Context, p Policy, fn func() error) error {
	p = p.withDefaults()

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialInterval
	exp.Multiplier = defaultInitMultiplier
	exp.MaxInterval = p.MaxInterval
	exp.RandomizationFactor = defaultInitRandomization
	exp.Reset()

	type unit struct{}
	op := func() (unit, error) {
		if err := ctx.Err(); err != nil {
			return unit{}, backoff.Permanent(err)
		}

		err := fn()
		if IsPermanent(err) {
			var bpe *backoff.PermanentError
			if errors.As(err, &bpe) {
				return unit{}, err
			}
			return unit{}, backoff.Permanent(err)
		}
		return unit{}, err
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(exp),
		backoff.WithMaxElapsedTime(p.MaxElapsed),
	}
	if p.OnRetry != nil {
		opts = append(opts, backoff.WithNotify(backoff.Notify(p.OnRetry)))
	}

	_, err := backoff.Retry(ctx, op, opts...)
	return err
}
