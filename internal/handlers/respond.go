package handlers

import (
	"net/http"
	"strconv"

	"github.com/almhq/license-manager/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondError converts a service error into the structured JSON envelope.
// This is the only place errors become HTTP.
func respondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.From(err); ok {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": appErr})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
		"code":    "INTERNAL",
		"message": "internal server error",
	}})
}

// pathID parses the :param path segment as a record id.
func pathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		return 0, apperrors.Validation(param, "must be a numeric id")
	}
	return uint(id), nil
}
