package main

import (
	"net/http"

	"fc-manager-backend/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// healthCheck handles the health check endpoint
func (s *server) healthCheck(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	cacheStatus := "disabled"
	if s.cache != nil {
		cacheStatus = "ok"
		if err := s.cache.Ping(c.Request.Context()); err != nil {
			cacheStatus = "unreachable"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "fc-manager-backend",
		"cache":   cacheStatus,
	})
}

func currentCareer(c *gin.Context) model.Career {
	return c.MustGet(careerKey).(model.Career)
}

// listCareers returns the caller's careers, newest first.
func (s *server) listCareers(c *gin.Context) {
	careers, err := s.store.ListCareers(c.Request.Context(), c.GetString(userKey))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, careers)
}

// createCareer creates a career and selects it as the active one.
func (s *server) createCareer(c *gin.Context) {
	var in model.CreateCareerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.badRequest(c, err)
		return
	}
	if in.ProjectType != "" {
		in.ProjectType, _ = model.ParseProjectType(string(in.ProjectType))
	}

	career, err := s.store.CreateCareer(c.Request.Context(), c.GetString(userKey), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.logger.Info("Career created", zap.String("career_id", career.ID), zap.String("club", career.ClubName))
	c.JSON(http.StatusCreated, career)
}

func (s *server) getCareer(c *gin.Context) {
	c.JSON(http.StatusOK, currentCareer(c))
}

func (s *server) updateCareer(c *gin.Context) {
	var in model.UpdateCareerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.badRequest(c, err)
		return
	}
	if in.ProjectType != nil {
		p, _ := model.ParseProjectType(string(*in.ProjectType))
		in.ProjectType = &p
	}

	career := currentCareer(c)
	updated, err := s.store.UpdateCareer(c.Request.Context(), career.UserID, career.ID, in)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.invalidate(c, career.ID)
	c.JSON(http.StatusOK, updated)
}

// deleteCareer removes a career and everything recorded under it.
func (s *server) deleteCareer(c *gin.Context) {
	career := currentCareer(c)
	if err := s.store.DeleteCareer(c.Request.Context(), career.UserID, career.ID); err != nil {
		s.fail(c, err)
		return
	}
	s.invalidate(c, career.ID)
	s.logger.Info("Career deleted", zap.String("career_id", career.ID))
	c.JSON(http.StatusOK, gin.H{"message": "Career deleted"})
}

// getActiveCareer returns the selected career, or null.
func (s *server) getActiveCareer(c *gin.Context) {
	career, err := s.store.ActiveCareer(c.Request.Context(), c.GetString(userKey))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"career": career})
}

func (s *server) setActiveCareer(c *gin.Context) {
	var req ActiveCareerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	career, err := s.store.SetActiveCareer(c.Request.Context(), c.GetString(userKey), req.CareerID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"career": career})
}
