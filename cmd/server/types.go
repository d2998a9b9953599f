package main

import (
	"codeberg.org/uigen/server/internal/config"
	"codeberg.org/uigen/server/internal/llm"
	"codeberg.org/uigen/server/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// holds all dependencies and state for the API server
type Server struct {
	config    *config.Config
	completer llm.Completer
	limiter   *Limiter
	router    *gin.Engine
}

// the admission gate plus whatever must be released on shutdown
type Limiter struct {
	Gate     ratelimit.Gate
	Strategy string
	Backend  string // "redis" or "memory"
	closer   func() error
}

// releases the limiter's store connection or sweeper
func (l *Limiter) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}

	return l.closer()
}
