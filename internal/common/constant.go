package common

import "time"

// SessionCookieName is the cookie that carries the opaque session token.
const SessionCookieName = "sessionId"

// SessionCookieMaxAge is the lifetime of a freshly minted session cookie.
const SessionCookieMaxAge = 24 * time.Hour
