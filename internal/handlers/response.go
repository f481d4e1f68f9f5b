package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopora-backend/internal/logger"
)

// Internal fault detail is logged, never sent to the caller.
const msgServerError = "Server error"

func serverError(c *gin.Context, log *logger.Logger, msg string, err error) {
	log.Error(msg, "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"message": msgServerError})
}

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Server is running!"})
}
