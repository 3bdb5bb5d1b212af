package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError carries the status code and message a handler wants sent back.
type APIError struct {
	Code    int
	Message string
}

// HandlerFunc is the endpoint shape used across the API: return a
// payload or an error, never write to the context directly.
type HandlerFunc func(ctx *gin.Context) (any, *APIError)

// ResolveEndpoint adapts a HandlerFunc to gin, serializing either the
// payload or the error envelope.
func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}
