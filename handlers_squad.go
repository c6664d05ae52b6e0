package main

import (
	"fmt"
	"net/http"

	"fc-manager-backend/internal/cache"
	"fc-manager-backend/internal/kpi"
	"fc-manager-backend/internal/model"
	"fc-manager-backend/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// listPlayers supports ?status=, ?origin= and ?position= filters.
func (s *server) listPlayers(c *gin.Context) {
	var f store.PlayerFilter
	if v := c.Query("status"); v != "" {
		status, err := model.ParsePlayerStatus(v)
		if err != nil {
			s.badRequest(c, err)
			return
		}
		f.Status = status
	}
	if v := c.Query("origin"); v != "" {
		origin, err := model.ParsePlayerOrigin(v)
		if err != nil {
			s.badRequest(c, err)
			return
		}
		f.Origin = origin
	}
	f.Position = c.Query("position")

	players, err := s.store.ListPlayers(c.Request.Context(), currentCareer(c).ID, f)
	if err != nil {
		s.fail(c, err)
		return
	}

	views := make([]PlayerView, 0, len(players))
	for _, p := range players {
		views = append(views, newPlayerView(p))
	}
	c.JSON(http.StatusOK, views)
}

func (s *server) getPlayer(c *gin.Context) {
	p, err := s.store.GetPlayer(c.Request.Context(), currentCareer(c).ID, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newPlayerView(p))
}

func (s *server) createPlayer(c *gin.Context) {
	var in model.CreatePlayerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.badRequest(c, err)
		return
	}
	canonicalPlayer(&in.Status, &in.Origin)

	careerID := currentCareer(c).ID
	p, err := s.store.CreatePlayer(c.Request.Context(), careerID, in)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.invalidate(c, careerID)
	c.JSON(http.StatusCreated, newPlayerView(p))
}

func (s *server) updatePlayer(c *gin.Context) {
	var in model.UpdatePlayerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.badRequest(c, err)
		return
	}
	canonicalPlayer(in.Status, in.Origin)

	careerID := currentCareer(c).ID
	p, err := s.store.UpdatePlayer(c.Request.Context(), careerID, c.Param("id"), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.invalidate(c, careerID)
	c.JSON(http.StatusOK, newPlayerView(p))
}

func (s *server) deletePlayer(c *gin.Context) {
	careerID := currentCareer(c).ID
	if err := s.store.DeletePlayer(c.Request.Context(), careerID, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	s.invalidate(c, careerID)
	c.JSON(http.StatusOK, gin.H{"message": "Player deleted"})
}

// getOverview returns the squad KPIs with optional Redis caching
func (s *server) getOverview(c *gin.Context) {
	ctx := c.Request.Context()
	career := currentCareer(c)

	var overview Overview
	if found, err := s.cache.Get(ctx, career.ID, cache.ViewOverview, &overview); err != nil {
		s.logger.Warn("Cache read failed", zap.String("career_id", career.ID), zap.Error(err))
	} else if found {
		c.JSON(http.StatusOK, overview)
		return
	}

	players, err := s.store.ListPlayers(ctx, career.ID, store.PlayerFilter{})
	if err != nil {
		s.fail(c, fmt.Errorf("loading squad: %w", err))
		return
	}

	overview = Overview{
		CareerID:       career.ID,
		ClubName:       career.ClubName,
		LeagueName:     career.LeagueName,
		CurrentSeason:  career.CurrentSeason,
		KPIs:           kpi.Squad(players),
		Composition:    kpi.SquadComposition(players),
		PotentialTiers: kpi.TierCounts(players),
	}

	if err := s.cache.Set(ctx, career.ID, cache.ViewOverview, overview); err != nil {
		s.logger.Warn("Cache write failed", zap.String("career_id", career.ID), zap.Error(err))
	}
	c.JSON(http.StatusOK, overview)
}
