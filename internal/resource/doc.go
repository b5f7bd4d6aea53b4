// Package resource governs batch similarity jobs.
//
// The Controller manages three limits:
//
//   - Jobs: a weighted semaphore bounds concurrently running batch jobs
//   - Items: a token bucket paces how fast outer elements are scored
//   - Matrix cells: a fail-fast budget for pairwise matrices held in memory
//
// Usage:
//
//	rc := resource.NewController(resource.Config{
//	    MaxConcurrentJobs: 2,
//	    ItemsPerSecond:    500,
//	    MaxMatrixCells:    50_000_000,
//	})
//
//	if err := rc.AcquireJob(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseJob()
//
// All methods are safe for concurrent use and treat a nil Controller as
// unlimited.
package resource
