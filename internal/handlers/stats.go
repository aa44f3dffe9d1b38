package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kartikp36/github-org-stats/internal/models"
)

// StatsRunner is the aggregation entry point the handler drives.
type StatsRunner interface {
	Run(ctx context.Context, cfg models.RunConfig) (*models.StatsData, error)
	HasCredential(token string) bool
}

type StatsHandler struct {
	statsService StatsRunner
}

func NewStatsHandler(statsService StatsRunner) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetStats handles POST /api/stats
func (h *StatsHandler) GetStats(c *gin.Context) {
	var req models.StatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	cfg := models.RunConfig{
		Org:            strings.TrimSpace(req.Org),
		Since:          req.Since,
		IncludeReviews: req.IncludeReviews,
		ExcludeForks:   req.ExcludeForks,
		Blacklist:      models.ParseBlacklist(req.Blacklist),
		Top:            req.ResolveTop(),
		Token:          strings.TrimSpace(req.Token),
	}

	// The warning is independent of whether the run succeeds.
	warning := ""
	if !h.statsService.HasCredential(cfg.Token) {
		warning = models.NoTokenWarning
	}

	data, err := h.statsService.Run(c.Request.Context(), cfg)
	if err != nil {
		c.JSON(statusForError(err), models.ErrorResponse{
			Error:   err.Error(),
			Warning: warning,
		})
		return
	}

	c.JSON(http.StatusOK, models.StatsResponse{
		Message: "Stats fetched successfully",
		Data:    data,
		Warning: warning,
	})
}

func statusForError(err error) int {
	switch {
	case models.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrOrgNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
