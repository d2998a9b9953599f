package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is set via ldflags during build
var Version = "1.0.0"

// HealthHandler godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Router /health [get]
func Handler(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Status:  "healthy",
		Service: "uigen",
		Version: Version,
	})
}
