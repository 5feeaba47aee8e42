package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/ministryworks/dms-go/pkg/types"
)

// GetClaimsFromContext returns the claims the JWT middleware resolved.
// The services trust these as already verified.
var GetClaimsFromContext = func(c *gin.Context) (*types.Claims, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return nil, errors.New("user claims not found in context")
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return nil, errors.New("invalid user claims type")
	}

	return claims, nil
}

var GetUserIDFromContext = func(c *gin.Context) (uint, error) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
