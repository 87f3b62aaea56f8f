// Package parallel runs independent remote operations with bounded
// concurrency.
//
// WorkerPool does not order or serialize the work it runs: results are
// recorded in completion order.
package parallel
