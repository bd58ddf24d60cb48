// Package task provides background task processing with persistence.
//
// Tasks are saved to the database before being queued in memory, so
// work submitted shortly before a crash is recovered and re-run on the
// next start. A fixed worker pool drains the queue, and a monitor
// resets tasks stuck in the processing state.
//
// The only task type today is the correlation recompute, which rebuilds
// a user's lifestyle-factor correlations after new logs or readings.
package task
