package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Unavailable(c *gin.Context, code, message string) {
	Write(c, http.StatusServiceUnavailable, code, message)
}

// Respond maps err onto the response: business errors keep their status and
// extra fields, missing records become 404 and the rest is a 500 carrying the
// raw error message.
func Respond(c *gin.Context, err error) {
	if be, ok := AsBusiness(err); ok {
		body := gin.H{
			"error_code": be.Code,
			"message":    be.Error(),
		}
		for k, v := range be.Fields {
			body[k] = v
		}
		c.JSON(be.HTTPStatus(), body)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c, "not_found", "Record not found")
		return
	}

	Internal(c, "internal_error", err.Error())
}
