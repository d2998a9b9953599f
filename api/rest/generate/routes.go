package generate

import (
	"codeberg.org/uigen/server/internal/llm"
	"github.com/gin-gonic/gin"
)

// registers the UI generation route: the body is validated first, then the
// rate limiter admits the request, then the completion is streamed
func RegisterRoutes(router *gin.RouterGroup, completer llm.Completer, rateLimit gin.HandlerFunc) {
	router.POST("/generate-ui", BindRequest(), rateLimit, Handler(completer))
}
