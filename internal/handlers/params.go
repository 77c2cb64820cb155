package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/eventgenie/internal/httperr"
)

// --------------------------------------------------
// Request helpers
// --------------------------------------------------

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "invalid_request",
			"message":    "Invalid request body",
			"details":    err.Error(),
		})
		return false
	}
	return true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// floatQuery reads an optional numeric query parameter. A present but
// malformed value answers 400.
func floatQuery(c *gin.Context, name string) (*float64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_query", "Invalid "+name)
		return nil, false
	}
	return &v, true
}

// orMissing swaps gorm's not-found error for a named business error.
func orMissing(err, missing error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return missing
	}
	return err
}
