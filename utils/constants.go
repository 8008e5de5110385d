package utils

import "time"

// BlockedSlotCachePrefix is the prefix for the per-manager fallback copy of
// the blocked-slot ledger.
const BlockedSlotCachePrefix = "blockedSlots:"

// BlockedSlotCacheTTL is the time-to-live for fallback ledger entries.
const BlockedSlotCacheTTL = 24 * time.Hour

// SelectionSessionTTL bounds how long an abandoned range-selection session
// is kept before the sweeper drops it.
const SelectionSessionTTL = 30 * time.Minute
