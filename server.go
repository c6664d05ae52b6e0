package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fc-manager-backend/internal/cache"
	"fc-manager-backend/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	userHeader = "X-User-ID"
	userKey    = "userID"
	careerKey  = "career"
)

// server holds the dependencies shared by all handlers.
type server struct {
	store   store.Store
	cache   *cache.Cache
	logger  *zap.Logger
	metrics *httpMetrics
}

func newServer(st store.Store, c *cache.Cache, logger *zap.Logger) *server {
	return &server{store: st, cache: c, logger: logger, metrics: newHTTPMetrics()}
}

// router wires middleware and routes.
func (s *server) router(corsOrigins []string) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger), s.metrics.middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", userHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !allowsAnyOrigin(corsOrigins),
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", s.healthCheck)
	r.GET("/metrics", s.metrics.handler())

	api := r.Group("/api", s.requireUser)
	api.GET("/active-career", s.getActiveCareer)
	api.PUT("/active-career", s.setActiveCareer)

	careers := api.Group("/careers")
	careers.GET("", s.listCareers)
	careers.POST("", s.createCareer)

	career := careers.Group("/:careerId", s.loadCareer)
	career.GET("", s.getCareer)
	career.PATCH("", s.updateCareer)
	career.DELETE("", s.deleteCareer)
	career.GET("/overview", s.getOverview)
	career.GET("/finances", s.getFinances)

	career.GET("/players", s.listPlayers)
	career.POST("/players", s.createPlayer)
	career.GET("/players/:id", s.getPlayer)
	career.PATCH("/players/:id", s.updatePlayer)
	career.DELETE("/players/:id", s.deletePlayer)

	career.GET("/transfers", s.listTransfers)
	career.POST("/transfers", s.createTransfer)
	career.DELETE("/transfers/:id", s.deleteTransfer)

	career.GET("/budget", s.listBudget)
	career.POST("/budget", s.createBudgetEntry)
	career.PATCH("/budget/:id", s.updateBudgetEntry)

	career.GET("/journal", s.listJournal)
	career.POST("/journal", s.createJournalEntry)
	career.PATCH("/journal/:id", s.updateJournalEntry)
	career.DELETE("/journal/:id", s.deleteJournalEntry)

	return r
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// requireUser reads the caller id set by the upstream auth proxy.
func (s *server) requireUser(c *gin.Context) {
	userID := c.GetHeader(userHeader)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + userHeader + " header"})
		return
	}
	c.Set(userKey, userID)
	c.Next()
}

// loadCareer resolves :careerId for the caller, rejecting careers they do not own.
func (s *server) loadCareer(c *gin.Context) {
	career, err := s.store.GetCareer(c.Request.Context(), c.GetString(userKey), c.Param("careerId"))
	if err != nil {
		s.fail(c, err)
		c.Abort()
		return
	}
	c.Set(careerKey, career)
	c.Next()
}

// fail maps a store error onto an HTTP status.
func (s *server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, context.Canceled):
		status = 499
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *server) badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// invalidate drops the cached views of a career after a write.
func (s *server) invalidate(c *gin.Context, careerID string) {
	if err := s.cache.Invalidate(c.Request.Context(), careerID); err != nil {
		s.logger.Warn("Cache invalidation failed", zap.String("career_id", careerID), zap.Error(err))
	}
}
