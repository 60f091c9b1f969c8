package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// Message answers {"message": msg, key: data}, the shape used by mutating
// endpoints.
func Message(c *gin.Context, status int, msg, key string, data any) {
	body := gin.H{"message": msg}
	if key != "" {
		body[key] = data
	}
	c.JSON(status, body)
}
