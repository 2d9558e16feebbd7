// Package event is the host's synchronous event dispatcher.
//
// Subscribers declare the events they listen to; the dispatcher calls their
// listeners in registration order on the caller's goroutine. A listener may
// veto an event by returning false, which stops propagation and is reported
// back to the caller.
package event
