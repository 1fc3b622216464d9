// Package retry provides bounded retry with backoff for transient failures.
//
// The [Do] function retries an operation with configurable max attempts,
// delay, and backoff multiplier. It is used for Compute Engine API calls
// and for the network-dependent steps of the instance boot sequence,
// which retry with a fixed delay (multiplier 1.0).
package retry
