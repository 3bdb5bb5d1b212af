package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Fardin5046/salat-tracker/internal/http/api"
	"github.com/Fardin5046/salat-tracker/internal/http/api/auth/packets"
	"github.com/Fardin5046/salat-tracker/internal/http/middleware"
)

// AuthModule mounts the public login endpoint. There are no accounts to
// manage: one bcrypt hash from the environment guards the whole API.
func AuthModule(jwtSecret, passwordHash string) api.Module {
	ctl := &sessionManager{jwtSecret: jwtSecret, passwordHash: passwordHash}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/auth/login", ctl.ownerLogin)
	})
}

type sessionManager struct {
	jwtSecret    string
	passwordHash string
}

// POST /api/auth/login
func (s *sessionManager) ownerLogin(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if !middleware.CheckPassword(s.passwordHash, request.Password) {
		log.Warn().Msg("login attempt with wrong password")
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: middleware.ErrInvalidCredentials.Error()}
	}

	token, err := middleware.GenerateJWT(s.jwtSecret)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}

	return gin.H{"token": token}, nil
}
