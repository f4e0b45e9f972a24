// Package retry retries Hetzner Cloud calls that fail transiently.
//
// [WithExponentialBackoff] retries an operation with a growing delay until
// it succeeds, the attempts run out or the context ends. Errors wrapped
// with [Fatal], or rejected by the [WithRetryIf] predicate, stop the loop
// immediately.
package retry
