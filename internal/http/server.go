// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/http/handlers"
	"wayfarer/internal/http/middleware"
	"wayfarer/internal/modules/auth"
	"wayfarer/internal/modules/trip"
	"wayfarer/internal/service"
)

type ServerDeps struct {
	Assistant *service.Assistant
	Trips     *trip.Service
	// Accounts is optional; auth routes are registered only when present.
	Accounts *auth.Service
}

type Server struct {
	assistant *service.Assistant
	trips     *trip.Service
	accounts  *auth.Service
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		assistant: deps.Assistant,
		trips:     deps.Trips,
		accounts:  deps.Accounts,
	}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	rounds := handlers.NewRoundHandler(s.assistant)
	trips := handlers.NewTripHandler(s.trips, s.assistant)
	shares := handlers.NewShareHandler(s.assistant)

	api := r.Group("/api")
	api.POST("/rounds", rounds.Plan)
	api.POST("/rounds/reevaluate", rounds.ReEvaluate)
	api.GET("/preferences/options", rounds.Options)

	api.GET("/trips", trips.List)
	api.GET("/trips/favourites", trips.Favourites)
	api.GET("/trips/:id", trips.Replay)
	api.POST("/trips/:id/like", trips.Like)
	api.DELETE("/trips/:id", trips.Delete)

	api.POST("/share", shares.Create)
	api.GET("/share/:token", shares.Restore)

	if s.accounts != nil {
		accounts := handlers.NewAuthHandler(s.accounts)
		api.POST("/auth/signup", accounts.SignUp)
		api.POST("/auth/signin", accounts.SignIn)

		authed := api.Group("", middleware.Auth(s.accounts))
		authed.POST("/auth/signout", accounts.SignOut)
		authed.GET("/auth/me", accounts.Me)
	}

	return r
}
