package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lawhearing/backend/internal/captcha"
	"github.com/lawhearing/backend/internal/database"
	"github.com/lawhearing/backend/internal/handlers"
	"github.com/lawhearing/backend/internal/middleware"
)

type Server struct {
	db      database.Service
	handler *handlers.Handler
}

// NewServer creates and configures a new server
func NewServer() (*http.Server, database.Service) {
	db, err := database.New()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	handler := handlers.NewHandler(db.GetDB(), captcha.NewClient())

	newServer := &Server{
		db:      db,
		handler: handler,
	}

	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", port)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server, db
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Draft routes (public reads)
		api.GET("/drafts", s.handler.Draft.GetDrafts)
		api.GET("/drafts/:id", s.handler.Draft.GetDraft)
		api.GET("/drafts/:id/tally", s.handler.Vote.DraftTally)
		api.GET("/sections/:id/tally", s.handler.Vote.SectionTally)
		api.GET("/sections/:id/comments", s.handler.Comment.GetComments)

		// Citizen actions: anonymous sessions, token attached when present
		citizen := api.Group("")
		citizen.Use(middleware.OptionalAuth())
		{
			citizen.POST("/sections/:id/vote", s.handler.Vote.CastVote)
			citizen.DELETE("/sections/:id/vote", s.handler.Vote.RemoveVote)
			citizen.POST("/drafts/:id/survey", s.handler.Survey.Submit)
			citizen.POST("/sections/:id/comments", s.handler.Comment.CreateComment)
		}

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/me", s.handler.Auth.GetMe)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
		{
			admin.POST("/drafts", s.handler.Draft.CreateDraft)
			admin.PATCH("/drafts/:id", s.handler.Draft.UpdateDraft)
			admin.DELETE("/drafts/:id", s.handler.Draft.DeleteDraft)
			admin.POST("/drafts/:id/sections", s.handler.Draft.AddSection)
			admin.DELETE("/sections/:id", s.handler.Draft.DeleteSection)
			admin.POST("/drafts/:id/questions", s.handler.Draft.AddQuestion)
			admin.DELETE("/questions/:id", s.handler.Draft.DeleteQuestion)

			admin.GET("/drafts/:id/responses", s.handler.Survey.Responses)
			admin.GET("/drafts/:id/export", s.handler.Export.ExportDraft)

			admin.GET("/comments", s.handler.Comment.ListForModeration)
			admin.PATCH("/comments/:id/status", s.handler.Comment.UpdateStatus)
		}
	}

	return r
}
