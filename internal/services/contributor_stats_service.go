package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"

	"github.com/kartikp36/github-org-stats/internal/models"
	"github.com/kartikp36/github-org-stats/pkg/logger"
)

// ContributorStatsService fetches per-repository contributor totals and
// per-user review counts from the GitHub API.
type ContributorStatsService struct {
	client   *github.Client
	hasToken bool
	log      *logrus.Logger
}

func NewContributorStatsService(client *github.Client, hasToken bool, log *logrus.Logger) *ContributorStatsService {
	if log == nil {
		log = logger.GetLogger()
	}
	return &ContributorStatsService{
		client:   client,
		hasToken: hasToken,
		log:      log,
	}
}

// FetchContributorStats queries the aggregated contributor statistics of
// one repository and sums the weekly line counts per contributor.
// GitHub computes these statistics asynchronously; a 202 response means
// the cache is cold and is treated as zero contributors, not an error.
func (s *ContributorStatsService) FetchContributorStats(ctx context.Context, org, repo string) ([]models.RepoContributorStats, error) {
	stats, _, err := s.client.Repositories.ListContributorsStats(ctx, org, repo)
	if err != nil {
		var accepted *github.AcceptedError
		if errors.As(err, &accepted) {
			s.log.WithFields(logrus.Fields{"org": org, "repository": repo}).
				Debug("Contributor stats not yet computed, counting as zero")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch contributor stats for %s/%s: %w", org, repo, err)
	}

	contributors := make([]models.RepoContributorStats, 0, len(stats))
	for _, cs := range stats {
		if cs.GetAuthor() == nil {
			// Anonymous entries cannot be attributed to a login.
			continue
		}

		entry := models.RepoContributorStats{
			User:    cs.GetAuthor().GetLogin(),
			Commits: cs.GetTotal(),
		}
		for _, week := range cs.Weeks {
			entry.LinesAdded += week.GetAdditions()
			entry.LinesRemoved += week.GetDeletions()
		}
		contributors = append(contributors, entry)
	}

	return contributors, nil
}

// FetchReviewCount counts pull requests in the organization reviewed by
// the user, via a single search query per user.
func (s *ContributorStatsService) FetchReviewCount(ctx context.Context, org, user string) (int, error) {
	query := fmt.Sprintf("org:%s reviewed-by:%s is:pr", org, user)
	opt := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 1}}

	result, _, err := s.client.Search.Issues(ctx, query, opt)
	if err != nil {
		return 0, fmt.Errorf("failed to search reviewed pull requests for %s: %w", user, err)
	}
	return result.GetTotal(), nil
}
