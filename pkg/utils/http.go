package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseIDParam parses a numeric path parameter.
func ParseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// ParseIndexParam parses a zero-based list index path parameter.
func ParseIndexParam(c *gin.Context, name string) (int, error) {
	idx, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, err
	}
	return idx, nil
}
