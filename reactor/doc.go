// Package reactor provides a channel-based readiness-notification loop.
//
// A Loop multiplexes any number of byte sources onto a single dispatch
// goroutine: each registered source is pumped by its own reader goroutine
// into a shared event channel, and Run consumes that channel, invoking the
// binding's callbacks sequentially. Callbacks therefore never run
// concurrently with each other, which is what lets the shell package keep
// all of its state lock-free.
//
// Termination is cooperative: RequestStop records a stop intent that Run
// consumes at the top of its next iteration, after the in-flight callback
// has completed.
package reactor
