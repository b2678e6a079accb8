package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL caps how long a verified token stays cached.
const AuthCacheTTL = time.Hour

// SessionPrefix prefixes booking wizard session keys.
const SessionPrefix = "bookingSession:"

// SettingsCacheKey holds the cached platform settings document.
const SettingsCacheKey = "settings:current"

// SettingsCacheTTL is how long settings are served from cache.
const SettingsCacheTTL = 5 * time.Minute
