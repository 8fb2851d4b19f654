package httpresp

import "github.com/gin-gonic/gin"

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(201, data)
}

// Message is the {success, message} shape the frontend expects from
// mutating endpoints.
func Message(c *gin.Context, msg string) {
	c.JSON(200, gin.H{"success": true, "message": msg})
}
