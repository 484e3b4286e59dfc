// Package workers provides the fixed-size pool that offloads inference
// work: competing consumers draining one shared, unbounded queue.
//
// Submit enqueues without blocking and without backpressure; under
// sustained overload the queue grows without bound. That is a documented
// limitation, not a defect to fix here; callers that need admission
// control must apply it upstream. There is no per-task cancellation or
// timeout, and Close does not guarantee queued tasks run.
package workers
