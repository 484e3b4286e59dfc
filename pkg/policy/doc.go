// Package policy enforces the training-time governance gates: differential
// privacy bounds and fairness-gap bounds.
//
// Both gates are pure, total functions of the parsed training spec. They
// perform no I/O and touch no shared state, so they are safe to call from
// any goroutine without locking and are trivially testable in isolation.
// Every denial carries a specific snake_case reason code that crosses the
// serving boundary unchanged.
package policy
