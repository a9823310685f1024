package common

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// InternalError logs the underlying failure and answers with the generic
// database message; internals never reach the client.
func InternalError(c *gin.Context, err error) {
	log.Error().Err(err).Str("method", c.Request.Method).Str("path", c.Request.URL.Path).Msg("internal error")
	c.JSON(500, gin.H{"error": ErrDatabase})
}
