// Package channel provides a bounded multi-producer/multi-consumer channel
// backed by a fixed-capacity ring buffer.
//
// A Channel is guarded by one mutex and one condition variable shared by
// senders and receivers. Every state change wakes all waiters, and every
// waiter re-checks its predicate before proceeding. Close stops new sends
// but lets receivers drain what is already buffered; Receive reports end of
// stream only once the channel is both closed and empty.
//
// Bounded waits are available through the Timeout, Context and Try
// variants. A wait that expires is reported separately from success and
// from closure.
package channel
