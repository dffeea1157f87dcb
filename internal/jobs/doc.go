// Package jobs builds simulated jobs for the batchrun CLI.
//
// A simulated job sleeps for a random delay and then either succeeds with a fixed
// value or fails with "<name> failed". Delay and outcome are drawn when the job
// is built, so a Builder seeded with the same value reproduces the same batch.
// The sleep observes context cancellation, which makes simulated jobs a good
// demonstration of fail-fast aborts.
package jobs
