package session_constants

import "time"

// SessionTTL is the retention window for a session record. Anything older
// is dropped the next time the store is loaded from the snapshot.
const SessionTTL = 24 * time.Hour

const SessionCodeLength = 6

// MaxCodeAttempts bounds the uniqueness retry loop when generating a new
// session code. 36^6 codes means collisions are rare, but we refuse to
// spin forever on a full store.
const MaxCodeAttempts = 10

// SnapshotQueueSize is the capacity of the async persistence queue.
const SnapshotQueueSize = 16
