package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam extracts a numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
