// Package retention enforces the data retention policy: audit records and
// dataset records older than the configured window are pruned. A cron-driven
// scheduler runs the pruner in the background.
package retention
