package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// validPassTypes is the enumerated set of pass categories a listing may
// carry.  Values arrive upper-cased from the DTO layer.
var validPassTypes = map[string]bool{
	"GENERAL":    true,
	"VIP":        true,
	"EARLY_BIRD": true,
	"STUDENT":    true,
}

// getUserID extracts the user_id placed in context by the JWT
// middleware and converts it to uint64.  The claim may arrive as any
// numeric type or a numeric string depending on how the token was
// decoded.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}
