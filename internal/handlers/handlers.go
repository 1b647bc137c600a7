package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"fakestore/internal/repositories"
)

// listOptions reads the shared limit/sort query parameters. A limit of 0
// or an unparsable value means unbounded; any sort other than "desc" is
// ascending.
func listOptions(c *fiber.Ctx) repositories.ListOptions {
	return repositories.ListOptions{
		Limit: int64(c.QueryInt("limit", 0)),
		Sort:  c.Query("sort"),
	}
}

// dateRange reads the startdate/enddate query parameters. Defaults are
// the epoch and now; unparsable values fall back to the defaults.
func dateRange(c *fiber.Ctx) (time.Time, time.Time) {
	start := time.Unix(0, 0).UTC()
	end := time.Now()
	if v := c.Query("startdate"); v != "" {
		if t, ok := parseDate(v); ok {
			start = t
		}
	}
	if v := c.Query("enddate"); v != "" {
		if t, ok := parseDate(v); ok {
			end = t
		}
	}
	return start, end
}

// parseDate accepts an RFC 3339 timestamp or a bare yyyy-mm-dd date.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// validationFailed writes the 400 response for a payload that violated
// its rule set, with one detail message per violated rule.
func validationFailed(c *fiber.Ctx, details []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"details": details,
	})
}
