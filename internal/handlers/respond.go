package handlers

import (
	"github.com/gin-gonic/gin"
)

// errorJSON writes the error envelope every endpoint uses.
func errorJSON(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
