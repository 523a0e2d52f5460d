// Package scheduler drives the reconciliation cycles.
//
// One goroutine runs Loop.Run. Each cycle queries and renders every channel in
// configured order, hands the text to the reconciler and saves the message id
// state once at the end. Name data is refreshed at startup and whenever the
// names interval has elapsed before a cycle. Failures of a single channel,
// including panics, are logged and do not affect the remaining channels.
package scheduler
