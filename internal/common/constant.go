package common

// TokenHeaderName is the HTTP header carrying the session token on
// authorized requests.
const TokenHeaderName = "X-Token"

// SessionKeyPrefix is prepended to the session token to build the cache key
// under which the owning user id is stored.
const SessionKeyPrefix = "auth_"
