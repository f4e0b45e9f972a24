// Package async runs independent loads concurrently.
//
// [RunParallel] executes named tasks on their own goroutines and joins
// every failure into one error. The portal uses it to fetch the SSH key,
// both catalogs and the capability flags together.
package async
