package utils

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

type Retrier[T any] struct {
	strategy HandlingStrategy
}

func NewRetrier[T any](strategy HandlingStrategy) *Retrier[T] {
	return &Retrier[T]{strategy: strategy}
}

// NewBoundedRetrier gives up after maximumRetries retries.
func NewBoundedRetrier[T any](maximumRetries int) *Retrier[T] {
	return NewRetrier[T](NewExponentialBackoffStrategy(maximumRetries, 100*time.Millisecond, 0.1, 2*time.Second))
}

func NewNopRetrier[T any]() *Retrier[T] {
	return NewRetrier[T](&NopRetryStrategy{})
}

// DoWithReturn runs action until it succeeds, the strategy gives up, or ctx is
// done. On cancellation the last action error is returned if there was one.
func (r *Retrier[T]) DoWithReturn(ctx context.Context, action func(context.Context) (T, error)) (T, error) {
	var defaultT T
	for {
		result, err := action(ctx)
		if err == nil {
			r.strategy.HandleSuccess()
			return result, nil
		}
		decision := r.strategy.HandleError(err)
		if decision.ReturnError {
			return defaultT, err
		}

		zap.S().Infof("Retrying due to error: %v. Time to wait: %v", err, decision.TimeToWait)
		timer := time.NewTimer(decision.TimeToWait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return defaultT, err
		case <-timer.C:
		}
	}
}

type Decision struct {
	TimeToWait  time.Duration
	ReturnError bool
}

type HandlingStrategy interface {
	HandleError(err error) Decision
	HandleSuccess()
}

//NOT THREAD SAFE

type ExponentialBackoffStrategy struct {
	maximumRetries   int
	initialDelay     time.Duration
	maxDelay         time.Duration
	jitterPercentage float64

	currentRetryNumber int
	nextDelay          time.Duration
	rndGenerator       *rand.Rand
}

func NewExponentialBackoffStrategy(maximumRetries int, initialDelay time.Duration, jitterPercentage float64, maxDelay time.Duration) *ExponentialBackoffStrategy {
	return &ExponentialBackoffStrategy{
		maximumRetries:     maximumRetries,
		initialDelay:       initialDelay,
		maxDelay:           maxDelay,
		jitterPercentage:   jitterPercentage,
		currentRetryNumber: 0,
		nextDelay:          initialDelay,
		rndGenerator:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// HandleError gives up once maximumRetries retries were spent; -1 never gives up.
// Giving up resets the budget for the next run.
func (ebs *ExponentialBackoffStrategy) HandleError(err error) Decision {
	if ebs.currentRetryNumber >= ebs.maximumRetries && ebs.maximumRetries != -1 {
		ebs.HandleSuccess()
		return Decision{ReturnError: true}
	}
	ebs.currentRetryNumber++
	currentDelay := ebs.nextDelay
	nextBaseDelay := ebs.nextDelay * 2
	if nextBaseDelay > ebs.maxDelay {
		nextBaseDelay = ebs.maxDelay
	}
	ebs.nextDelay = ebs.modifyWithJitter(nextBaseDelay)
	return Decision{TimeToWait: currentDelay}
}

func (ebs *ExponentialBackoffStrategy) HandleSuccess() {
	ebs.currentRetryNumber = 0
	ebs.nextDelay = ebs.initialDelay
}

func (ebs *ExponentialBackoffStrategy) modifyWithJitter(duration time.Duration) time.Duration {
	maxJitterMilliseconds := int64(float64(duration.Milliseconds()) * ebs.jitterPercentage)
	if maxJitterMilliseconds <= 0 {
		return duration
	}
	jitterMilliseconds := ebs.rndGenerator.Int63n(maxJitterMilliseconds)
	jitterMilliseconds -= maxJitterMilliseconds / 2
	return duration + time.Duration(jitterMilliseconds)*time.Millisecond
}

type NopRetryStrategy struct{}

func (nrs *NopRetryStrategy) HandleError(err error) Decision {
	return Decision{ReturnError: true}
}

func (nrs *NopRetryStrategy) HandleSuccess() {

}
