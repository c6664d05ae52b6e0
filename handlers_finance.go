package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"fc-manager-backend/internal/cache"
	"fc-manager-backend/internal/kpi"
	"fc-manager-backend/internal/model"
	"fc-manager-backend/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// seasonQuery parses an optional positive ?season= parameter.
func seasonQuery(c *gin.Context) (int, error) {
	v := c.Query("season")
	if v == "" {
		return 0, nil
	}
	season, err := strconv.Atoi(v)
	if err != nil || season < 1 {
		return 0, fmt.Errorf("invalid season %q", v)
	}
	return season, nil
}

// listTransfers supports ?type= and ?season= filters.
func (s *server) listTransfers(c *gin.Context) {
	var f store.TransferFilter
	if v := c.Query("type"); v != "" {
		t, err := model.ParseTransferType(v)
		if err != nil {
			s.badRequest(c, err)
			return
		}
		f.Type = t
	}
	season, err := seasonQuery(c)
	if err != nil {
		s.badRequest(c, err)
		return
	}
	f.Season = season

	transfers, err := s.store.ListTransfers(c.Request.Context(), currentCareer(c).ID, f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, TransferList{Transfers: transfers, Summary: kpi.TransferTotals(transfers)})
}

// createTransfer records a transfer; the season's budget entry follows it.
func (s *server) createTransfer(c *gin.Context) {
	var in model.CreateTransferInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.badRequest(c, err)
		return
	}
	in.Type, _ = model.ParseTransferType(string(in.Type))

	careerID := currentCareer(c).ID
	t, err := s.store.CreateTransfer(c.Request.Context(), careerID, in)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.invalidate(c, careerID)
	s.logger.Info("Transfer recorded",
		zap.String("career_id", careerID),
		zap.String("type", string(t.Type)),
		zap.Float64("amount", t.Amount),
		zap.Int("season", t.Season))
	c.JSON(http.StatusCreated, t)
}

func (s *server) deleteTransfer(c *gin.Context) {
	careerID := currentCareer(c).ID
	if err := s.store.DeleteTransfer(c.Request.Context(), careerID, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	s.invalidate(c, careerID)
	c.JSON(http.StatusOK, gin.H{"message": "Transfer deleted"})
}

// listBudget returns every season with its balance and the career totals.
func (s *server) listBudget(c *gin.Context) {
	entries, err := s.store.ListBudgetEntries(c.Request.Context(), currentCareer(c).ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, BudgetList{
		Entries:    entries,
		Summary:    kpi.AggregateFinancials(entries),
		NextSeason: kpi.NextSeason(entries),
	})
}

// createBudgetEntry opens a season, by default the one after the latest.
func (s *server) createBudgetEntry(c *gin.Context) {
	// An empty body, chunked or not, opens the next season with zero amounts.
	var in model.CreateBudgetInput
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		s.badRequest(c, err)
		return
	}

	careerID := currentCareer(c).ID
	entry, err := s.store.CreateBudgetEntry(c.Request.Context(), careerID, in)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.invalidate(c, careerID)
	c.JSON(http.StatusCreated, entry)
}

func (s *server) updateBudgetEntry(c *gin.Context) {
	var in model.UpdateBudgetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.badRequest(c, err)
		return
	}

	careerID := currentCareer(c).ID
	entry, err := s.store.UpdateBudgetEntry(c.Request.Context(), careerID, c.Param("id"), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.invalidate(c, careerID)
	c.JSON(http.StatusOK, entry)
}

// getFinances returns the financial dashboard with optional Redis caching
func (s *server) getFinances(c *gin.Context) {
	ctx := c.Request.Context()
	careerID := currentCareer(c).ID

	var finances Finances
	if found, err := s.cache.Get(ctx, careerID, cache.ViewFinances, &finances); err != nil {
		s.logger.Warn("Cache read failed", zap.String("career_id", careerID), zap.Error(err))
	} else if found {
		c.JSON(http.StatusOK, finances)
		return
	}

	entries, err := s.store.ListBudgetEntries(ctx, careerID)
	if err != nil {
		s.fail(c, fmt.Errorf("loading budget: %w", err))
		return
	}
	transfers, err := s.store.ListTransfers(ctx, careerID, store.TransferFilter{})
	if err != nil {
		s.fail(c, fmt.Errorf("loading transfers: %w", err))
		return
	}

	summary := kpi.AggregateFinancials(entries)
	finances = Finances{
		Summary:          summary,
		NetBalanceLabel:  kpi.FormatCurrency(summary.NetBalance),
		Seasons:          kpi.SeasonBalances(entries),
		Transfers:        kpi.TransferTotals(transfers),
		NetTransferSpend: kpi.NetTransferSpend(transfers),
		NextSeason:       kpi.NextSeason(entries),
	}

	if err := s.cache.Set(ctx, careerID, cache.ViewFinances, finances); err != nil {
		s.logger.Warn("Cache write failed", zap.String("career_id", careerID), zap.Error(err))
	}
	c.JSON(http.StatusOK, finances)
}
