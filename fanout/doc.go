// Package fanout runs producers and a pool of consumers against one bounded
// channel. Run owns every goroutine it starts, closes the channel once all
// producers have returned, and propagates errors according to a policy.
package fanout
