package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/kartikp36/github-org-stats/internal/models"
	"github.com/kartikp36/github-org-stats/pkg/logger"
)

// RepositoryLister produces the filtered repository set of one run.
type RepositoryLister interface {
	ListOrgRepositories(ctx context.Context, org string, excludeForks bool, blacklist models.Blacklist) ([]models.Repository, error)
}

// ContributorStatsFetcher retrieves per-repository contributor totals
// and per-user review counts.
type ContributorStatsFetcher interface {
	FetchContributorStats(ctx context.Context, org, repo string) ([]models.RepoContributorStats, error)
	FetchReviewCount(ctx context.Context, org, user string) (int, error)
}

// ClientBuilder creates the per-run GitHub collaborators from a request
// credential, falling back to the process-wide default.
type ClientBuilder interface {
	Build(token string) (RepositoryLister, ContributorStatsFetcher, bool)
	HasCredential(token string) bool
}

// StatsService orchestrates one aggregation run: list repositories,
// fan out per-repository fetches, merge, back-fill reviews, rank.
type StatsService struct {
	clients     ClientBuilder
	concurrency int
	log         *logrus.Logger
}

func NewStatsService(clients ClientBuilder, concurrency int, log *logrus.Logger) *StatsService {
	if concurrency <= 0 {
		concurrency = 5
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &StatsService{
		clients:     clients,
		concurrency: concurrency,
		log:         log,
	}
}

// HasCredential reports whether a run with the given request token would
// be authenticated, so callers can attach the no-token warning.
func (s *StatsService) HasCredential(token string) bool {
	return s.clients.HasCredential(token)
}

// Run executes one aggregation run. Repository-listing failures are
// run-fatal; per-repository and per-user fetch failures are absorbed as
// zero contributions. ErrOrgNotFound and ErrRateLimited propagate
// verbatim, everything else comes back wrapped.
func (s *StatsService) Run(ctx context.Context, cfg models.RunConfig) (*models.StatsData, error) {
	if strings.TrimSpace(cfg.Org) == "" {
		return nil, &models.ValidationError{Field: "org", Message: "organization name is required"}
	}
	if cfg.Top <= 0 {
		cfg.Top = models.DefaultTop
	}

	start := time.Now()
	lister, fetcher, hasToken := s.clients.Build(cfg.Token)

	s.log.WithFields(logrus.Fields{
		"org":             cfg.Org,
		"include_reviews": cfg.IncludeReviews,
		"exclude_forks":   cfg.ExcludeForks,
		"top":             cfg.Top,
		"authenticated":   hasToken,
	}).Info("Starting aggregation run")

	repos, err := lister.ListOrgRepositories(ctx, cfg.Org, cfg.ExcludeForks, cfg.Blacklist)
	if err != nil {
		if errors.Is(err, models.ErrOrgNotFound) || errors.Is(err, models.ErrRateLimited) {
			return nil, err
		}
		return nil, fmt.Errorf("aggregation failed: %w", err)
	}

	// Fan out per-repository fetches with bounded concurrency, but land
	// results in repository-list order so that first-seen ordering, and
	// with it the rank tie-break, stays deterministic.
	results := make([][]models.RepoContributorStats, len(repos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, repo := range repos {
		i, repo := i, repo
		g.Go(func() error {
			contributors, err := fetcher.FetchContributorStats(gctx, cfg.Org, repo.Name)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				// One bad repository must not abort the whole scan.
				s.log.WithError(err).WithField("repository", repo.Name).
					Warn("Skipping repository, counting zero contributions")
				return nil
			}
			results[i] = contributors
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Cancellation: partial results are discarded, not returned.
		return nil, fmt.Errorf("aggregation failed: %w", err)
	}

	aggregate := NewAggregate(cfg.Blacklist)
	for i, repo := range repos {
		aggregate.Merge(repo.Name, results[i])
	}

	// Reviews are back-filled only for users who survived aggregation,
	// bounding the search-query cost to actual contributors.
	if cfg.IncludeReviews {
		for _, user := range aggregate.Users() {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("aggregation failed: %w", err)
			}
			count, err := fetcher.FetchReviewCount(ctx, cfg.Org, user)
			if err != nil {
				s.log.WithError(err).WithField("user", user).
					Warn("Skipping review count, counting zero reviews")
				continue
			}
			aggregate.SetReviews(user, count)
		}
	}

	data := &models.StatsData{
		Org:            cfg.Org,
		Since:          cfg.Since,
		IncludeReviews: cfg.IncludeReviews,
		ExcludeForks:   cfg.ExcludeForks,
		Blacklist:      cfg.Blacklist.Strings(),
		Top:            cfg.Top,
		Stats:          aggregate.Rank(cfg.Top),
		Summary:        aggregate.Summary(),
	}

	s.log.WithFields(logrus.Fields{
		"org":          cfg.Org,
		"repositories": len(repos),
		"contributors": aggregate.Len(),
		"duration":     time.Since(start).String(),
	}).Info("Aggregation run complete")

	return data, nil
}
