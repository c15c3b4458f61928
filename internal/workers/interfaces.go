// Package workers runs the application's background jobs: periodic tickers
// on the server (rate limiter sweep, storage health probe) and the idle
// auto-lock on the client.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// Locker is the session surface the auto-lock worker needs.
type Locker interface {
	IsPresent() bool
	Clear()
}
