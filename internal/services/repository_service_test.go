package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartikp36/github-org-stats/internal/models"
)

// newTestGitHubClient points a go-github client at a mock HTTP server.
func newTestGitHubClient(t *testing.T, handler http.Handler) (*github.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	return client, server
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRepositoryServiceListOrgRepositories(t *testing.T) {
	t.Run("follows pagination to the last page", func(t *testing.T) {
		handler := func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/orgs/testorg/repos", r.URL.Path)
			if r.URL.Query().Get("page") == "2" {
				fmt.Fprint(w, `[{"name": "gamma", "fork": false}]`)
				return
			}
			w.Header().Set("Link", `</orgs/testorg/repos?page=2>; rel="next", </orgs/testorg/repos?page=2>; rel="last"`)
			fmt.Fprint(w, `[{"name": "alpha", "fork": false}, {"name": "beta", "fork": false}]`)
		}
		client, _ := newTestGitHubClient(t, http.HandlerFunc(handler))
		service := NewRepositoryService(client, true, discardLogger())

		repos, err := service.ListOrgRepositories(context.Background(), "testorg", false, nil)

		require.NoError(t, err)
		assert.Equal(t, []models.Repository{{Name: "alpha"}, {Name: "beta"}, {Name: "gamma"}}, repos)
	})

	t.Run("drops forks when requested", func(t *testing.T) {
		handler := func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"name": "upstream", "fork": false}, {"name": "forked", "fork": true}]`)
		}
		client, _ := newTestGitHubClient(t, http.HandlerFunc(handler))
		service := NewRepositoryService(client, true, discardLogger())

		repos, err := service.ListOrgRepositories(context.Background(), "testorg", true, nil)
		require.NoError(t, err)
		assert.Equal(t, []models.Repository{{Name: "upstream"}}, repos)

		repos, err = service.ListOrgRepositories(context.Background(), "testorg", false, nil)
		require.NoError(t, err)
		assert.Len(t, repos, 2)
	})

	t.Run("drops blacklisted repositories", func(t *testing.T) {
		handler := func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"name": "legacy", "fork": false}, {"name": "active", "fork": false}]`)
		}
		client, _ := newTestGitHubClient(t, http.HandlerFunc(handler))
		service := NewRepositoryService(client, true, discardLogger())

		repos, err := service.ListOrgRepositories(context.Background(), "testorg", false, models.ParseBlacklist("repo:legacy"))

		require.NoError(t, err)
		assert.Equal(t, []models.Repository{{Name: "active"}}, repos)
	})

	t.Run("maps 404 to ErrOrgNotFound", func(t *testing.T) {
		handler := func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
		}
		client, _ := newTestGitHubClient(t, http.HandlerFunc(handler))
		service := NewRepositoryService(client, true, discardLogger())

		_, err := service.ListOrgRepositories(context.Background(), "nosuchorg", false, nil)

		assert.ErrorIs(t, err, models.ErrOrgNotFound)
	})

	t.Run("maps unauthenticated 403 to ErrRateLimited", func(t *testing.T) {
		handler := func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"message": "API rate limit exceeded"}`)
		}
		client, _ := newTestGitHubClient(t, http.HandlerFunc(handler))
		service := NewRepositoryService(client, false, discardLogger())

		_, err := service.ListOrgRepositories(context.Background(), "testorg", false, nil)

		assert.ErrorIs(t, err, models.ErrRateLimited)
	})

	t.Run("authenticated 403 stays a generic failure", func(t *testing.T) {
		handler := func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"message": "Forbidden"}`)
		}
		client, _ := newTestGitHubClient(t, http.HandlerFunc(handler))
		service := NewRepositoryService(client, true, discardLogger())

		_, err := service.ListOrgRepositories(context.Background(), "testorg", false, nil)

		require.Error(t, err)
		assert.NotErrorIs(t, err, models.ErrRateLimited)
		assert.Contains(t, err.Error(), "failed to list repositories")
	})
}
