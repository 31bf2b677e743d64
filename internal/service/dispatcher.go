package service

import "context"

// EmailDispatcher abstracts the async job queue. Satisfied by
// *worker.Dispatcher; tests substitute a stub to capture enqueued emails.
type EmailDispatcher interface {
	EnqueueEmail(ctx context.Context, payload interface{}) error
}
