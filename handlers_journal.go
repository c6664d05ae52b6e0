package main

import (
	"net/http"

	"fc-manager-backend/internal/model"

	"github.com/gin-gonic/gin"
)

func (s *server) listJournal(c *gin.Context) {
	season, err := seasonQuery(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}
	entries, err := s.store.ListJournalEntries(c.Request.Context(), currentCareer(c).ID, season)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *server) createJournalEntry(c *gin.Context) {
	var in model.CreateJournalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.badRequest(c, err)
		return
	}
	e, err := s.store.CreateJournalEntry(c.Request.Context(), currentCareer(c).ID, in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (s *server) updateJournalEntry(c *gin.Context) {
	var in model.UpdateJournalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.badRequest(c, err)
		return
	}
	e, err := s.store.UpdateJournalEntry(c.Request.Context(), currentCareer(c).ID, c.Param("id"), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *server) deleteJournalEntry(c *gin.Context) {
	if err := s.store.DeleteJournalEntry(c.Request.Context(), currentCareer(c).ID, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Journal entry deleted"})
}
