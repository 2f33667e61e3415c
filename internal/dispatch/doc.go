// Package dispatch runs calls either on the caller's goroutine or on a
// bounded pool of worker goroutines.
//
// Whether the host can afford blocking workers is probed once per process
// ([Supported]). In pooled mode each call is handed to one worker and
// awaited; the context only bounds the wait for a free worker, a call that
// has started always runs to completion. A panic inside a worker is raised
// again on the calling goroutine, so both modes behave the same.
package dispatch
