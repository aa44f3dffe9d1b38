package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartikp36/github-org-stats/internal/models"
)

type stubRunner struct {
	data    *models.StatsData
	err     error
	hasCred bool
	gotCfg  models.RunConfig
	calls   int
}

func (s *stubRunner) Run(ctx context.Context, cfg models.RunConfig) (*models.StatsData, error) {
	s.calls++
	s.gotCfg = cfg
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

func (s *stubRunner) HasCredential(token string) bool {
	return s.hasCred || token != ""
}

func newStatsRouter(runner *stubRunner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/stats", NewStatsHandler(runner).GetStats)
	return router
}

func postStats(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/stats", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStatsHandlerGetStats(t *testing.T) {
	t.Run("success envelope with resolved parameters", func(t *testing.T) {
		runner := &stubRunner{
			hasCred: true,
			data: &models.StatsData{
				Org:   "testorg",
				Top:   7,
				Stats: []models.ContributorStats{{User: "alice", Commits: 5}},
			},
		}
		router := newStatsRouter(runner)

		rec := postStats(t, router, `{"org":"testorg","top":"7","blacklist":"user:bot","includeReviews":true}`)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp models.StatsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Stats fetched successfully", resp.Message)
		assert.Empty(t, resp.Warning)
		require.NotNil(t, resp.Data)
		assert.Equal(t, "testorg", resp.Data.Org)

		// Parameters were coerced before reaching the orchestrator.
		assert.Equal(t, 7, runner.gotCfg.Top)
		assert.True(t, runner.gotCfg.IncludeReviews)
		assert.Equal(t, models.ParseBlacklist("user:bot"), runner.gotCfg.Blacklist)
	})

	t.Run("missing organization is a 400", func(t *testing.T) {
		runner := &stubRunner{err: &models.ValidationError{Field: "org", Message: "organization name is required"}}
		router := newStatsRouter(runner)

		rec := postStats(t, router, `{"org":""}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "organization name is required")
	})

	t.Run("invalid JSON body is a 400 without running", func(t *testing.T) {
		runner := &stubRunner{}
		router := newStatsRouter(runner)

		rec := postStats(t, router, `{"org": `)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, runner.calls)
	})

	t.Run("org not found is a 404", func(t *testing.T) {
		runner := &stubRunner{hasCred: true, err: models.ErrOrgNotFound}
		router := newStatsRouter(runner)

		rec := postStats(t, router, `{"org":"nosuchorg"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rate limited is a 429 with warning", func(t *testing.T) {
		runner := &stubRunner{err: models.ErrRateLimited}
		router := newStatsRouter(runner)

		rec := postStats(t, router, `{"org":"testorg"}`)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, models.NoTokenWarning, resp.Warning)
	})

	t.Run("warning accompanies success without a credential", func(t *testing.T) {
		runner := &stubRunner{data: &models.StatsData{Org: "testorg"}}
		router := newStatsRouter(runner)

		rec := postStats(t, router, `{"org":"testorg"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp models.StatsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, models.NoTokenWarning, resp.Warning)
	})

	t.Run("other failures are a 500", func(t *testing.T) {
		runner := &stubRunner{hasCred: true, err: assert.AnError}
		router := newStatsRouter(runner)

		rec := postStats(t, router, `{"org":"testorg"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
