package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const maxPageSize = 200

// parseLimitOffset reads ?limit and ?offset. Out-of-range values fall back
// to the defaults instead of failing the request.
func parseLimitOffset(c *fiber.Ctx, defLimit int) (limit, offset int) {
	limit = queryInt(c, "limit", defLimit)
	if limit <= 0 || limit > maxPageSize {
		limit = defLimit
	}
	offset = queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func queryInt(c *fiber.Ctx, key string, def int) int {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
