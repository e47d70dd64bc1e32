package utils

import "time"

// GeoCachePrefix is the prefix used for Redis geocode cache keys.
const GeoCachePrefix = "geo:"

// GeoCacheTTL is the time-to-live for geocode cache entries.
const GeoCacheTTL = 24 * time.Hour

// ResetTokenTTL is how long a password-reset token stays valid.
const ResetTokenTTL = 10 * time.Minute
