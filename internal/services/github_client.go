package services

import (
	"net/http"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/kartikp36/github-org-stats/pkg/logger"
)

// GitHubClientService builds the per-run GitHub collaborators. The
// default token comes from configuration; a per-request token wins.
type GitHubClientService struct {
	defaultToken   string
	requestTimeout time.Duration
	log            *logrus.Logger
}

func NewGitHubClientService(defaultToken string, requestTimeoutSeconds int, log *logrus.Logger) *GitHubClientService {
	if log == nil {
		log = logger.GetLogger()
	}
	if requestTimeoutSeconds <= 0 {
		requestTimeoutSeconds = 30
	}
	return &GitHubClientService{
		defaultToken:   defaultToken,
		requestTimeout: time.Duration(requestTimeoutSeconds) * time.Second,
		log:            log,
	}
}

// HasCredential reports whether a run started with the given request
// token would be authenticated.
func (s *GitHubClientService) HasCredential(token string) bool {
	return token != "" || s.defaultToken != ""
}

// Build creates the lister and fetcher for one run.
func (s *GitHubClientService) Build(token string) (RepositoryLister, ContributorStatsFetcher, bool) {
	if token == "" {
		token = s.defaultToken
	}
	hasToken := token != ""

	client := s.newClient(token)
	return NewRepositoryService(client, hasToken, s.log), NewContributorStatsService(client, hasToken, s.log), hasToken
}

// newClient creates a go-github client with a secondary-rate-limit-aware
// transport and, when a token is present, an oauth2 bearer layer.
func (s *GitHubClientService) newClient(token string) *github.Client {
	var base http.RoundTripper
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil,
		github_ratelimit.WithSingleSleepLimit(time.Minute, nil))
	if err != nil {
		s.log.WithError(err).Warn("Failed to create rate limit waiter, using default transport")
	} else {
		base = rateLimitWaiter
	}

	httpClient := &http.Client{
		Transport: base,
		Timeout:   s.requestTimeout,
	}
	if token != "" {
		httpClient.Transport = &oauth2.Transport{
			Base:   base,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}

	return github.NewClient(httpClient)
}
