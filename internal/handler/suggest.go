package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// minSuggestPrefix suppresses lookups for very short prefixes; a one
// character prefix matches far too broadly to be a useful suggestion.
const minSuggestPrefix = 2

// Suggest serves event-name autocomplete from the in-memory prefix
// index.  It never queries the store: the index is a snapshot rebuilt
// on each full listing fetch.  Prefixes shorter than minSuggestPrefix
// return an empty result by policy, not as an error.
func (h *ListingHandler) Suggest(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if len(q) < minSuggestPrefix {
		return c.JSON(http.StatusOK, echo.Map{
			"query": q,
			"ids":   []uint64{},
		})
	}

	ids := h.Index.Lookup(q)
	return c.JSON(http.StatusOK, echo.Map{
		"query": q,
		"ids":   ids,
	})
}
