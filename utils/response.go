package utils

import "github.com/gin-gonic/gin"

// Message writes a {"message": ...} reply, merged with any extra fields.
func Message(ctx *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	ctx.JSON(status, body)
}

// Fail writes the {"error": ...} reply used across the API.
func Fail(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"error": message})
}
