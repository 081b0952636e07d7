package handlers

import (
	"net/http"
	"strconv"

	"travelportal/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	var fields map[string]string
	if err != nil {
		fields = map[string]string{"detail": err.Error()}
	}
	respondError(c, status, "", message, fields)
}

// RespondData wraps a successful payload in the {data} envelope.
func RespondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"data": data, "request_id": middleware.GetRequestID(c)})
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "body kosong", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "payload tidak valid", err)
		return false
	}
	return true
}

// paramID parses a positive :id path parameter, answering 400 otherwise.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, name+" tidak valid", nil)
		return 0, false
	}
	return id, true
}
