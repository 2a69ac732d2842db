package middleware

// identity.go defines helper functions shared across middleware files.
// It provides the user identity lookup the rate limiter keys on: the
// user_id value stored in the Echo context by JWTAuth. When no user is
// authenticated, "anon" is returned so unauthenticated traffic shares
// one bucket per IP.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID extracts a user identifier from context for rate-limit
// keys. JWTAuth stores the raw sub claim, which decodes as float64 for
// numeric IDs, so both string and numeric forms are handled.
func currentUserID(c echo.Context) string {
	for _, key := range []string{"user_id", "userID"} {
		switch v := c.Get(key).(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatUint(uint64(v), 10)
		case uint64:
			return strconv.FormatUint(v, 10)
		case int64:
			return strconv.FormatInt(v, 10)
		}
	}
	return "anon"
}
