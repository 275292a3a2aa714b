// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the upper bound for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// MaxImageUploadBytes caps event images and profile photos.
const MaxImageUploadBytes = 5 << 20

// DefaultOrganization is assigned to new profiles.
const DefaultOrganization = "University of Washington"
