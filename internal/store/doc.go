// package store owns the durable on-disk playlist collection.
//
// The whole collection is persisted as one JSON document (index.json) under
// a library root directory. Every public method runs under a single mutex,
// so a write always reflects a read performed while holding the same lock.
// Read-modify-write sequences that span multiple method calls are not atomic
// across the gap; callers needing that must serialize at a higher level.
package store
