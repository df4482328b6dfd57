package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every response carries the same envelope: a success flag plus either payload
// fields or a human-readable message. Handlers never let a raw error escape.

func respondOK(c *gin.Context, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
