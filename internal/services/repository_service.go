package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"

	"github.com/kartikp36/github-org-stats/internal/models"
	"github.com/kartikp36/github-org-stats/pkg/logger"
)

// RepositoryService lists the repositories of an organization that an
// aggregation run should consider.
type RepositoryService struct {
	client   *github.Client
	hasToken bool
	log      *logrus.Logger
}

func NewRepositoryService(client *github.Client, hasToken bool, log *logrus.Logger) *RepositoryService {
	if log == nil {
		log = logger.GetLogger()
	}
	return &RepositoryService{
		client:   client,
		hasToken: hasToken,
		log:      log,
	}
}

// ListOrgRepositories retrieves every repository of the organization and
// applies the fork and blacklist filters. The listing is exhaustive; a
// partial page read would silently corrupt the aggregation downstream.
func (s *RepositoryService) ListOrgRepositories(ctx context.Context, org string, excludeForks bool, blacklist models.Blacklist) ([]models.Repository, error) {
	opt := &github.RepositoryListByOrgOptions{
		Type:        "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var allRepos []*github.Repository
	for {
		repos, resp, err := s.client.Repositories.ListByOrg(ctx, org, opt)
		if err != nil {
			return nil, s.mapListError(org, err)
		}
		allRepos = append(allRepos, repos...)
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	filtered := make([]models.Repository, 0, len(allRepos))
	for _, repo := range allRepos {
		if excludeForks && repo.GetFork() {
			continue
		}
		if blacklist.MatchesRepo(repo.GetName()) {
			continue
		}
		filtered = append(filtered, models.Repository{
			Name: repo.GetName(),
			Fork: repo.GetFork(),
		})
	}

	s.log.WithFields(logrus.Fields{
		"org":          org,
		"repositories": len(filtered),
		"excluded":     len(allRepos) - len(filtered),
	}).Info("Listed organization repositories")

	return filtered, nil
}

// mapListError turns upstream listing failures into the distinct
// conditions callers act on. Anything else is wrapped unchanged.
func (s *RepositoryService) mapListError(org string, err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) && !s.hasToken {
		return models.ErrRateLimited
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %q", models.ErrOrgNotFound, org)
		case http.StatusForbidden:
			if !s.hasToken {
				return models.ErrRateLimited
			}
		}
	}

	return fmt.Errorf("failed to list repositories for %s: %w", org, err)
}
