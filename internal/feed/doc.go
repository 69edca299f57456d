// Package feed keeps per-campaign feeds of completed process instances in memory
// and serves them as periodic snapshots.
//
// A Scheduler pulls newly completed instances from the backing store on a fixed
// period and appends them to the processed or discarded Buffer of each campaign
// known to the Registry. A Streamer hands out Subscriptions that emit the full,
// cumulative contents of one campaign channel on every tick, so consumers see
// earlier items again and deduplicate by ID on their side.
//
// Buffers are never evicted and grow for the lifetime of the process. The
// scheduler is the only writer and keeps its cursors in memory, so running more
// than one instance against the same store yields duplicated items.
package feed
