package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Fardin5046/salat-tracker/internal/http/api"
	authapi "github.com/Fardin5046/salat-tracker/internal/http/api/auth/endpoints"
	trackerapi "github.com/Fardin5046/salat-tracker/internal/http/api/tracker/endpoints"
	"github.com/Fardin5046/salat-tracker/internal/prayer"
	"github.com/Fardin5046/salat-tracker/internal/store"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, st *store.TrackerStore, schedule prayer.Schedule) {
	// CORS: the PWA front end may be served from anywhere on the LAN.
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Disposition",
		},
		AllowCredentials: false,
	}))

	if env.AuthEnabled() {
		api.MountGroup(r, api.GroupConfig{
			Prefix: "/api",
			Auth:   false,
		},
			authapi.AuthModule(env.SecretKey, env.OwnerPasswordHash),
		)
	}

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api",
		Auth:      env.AuthEnabled(),
		SecretKey: env.SecretKey,
	},
		trackerapi.TrackerModule(st, schedule),
	)
}
