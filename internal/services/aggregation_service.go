package services

import (
	"sort"

	mstats "github.com/montanaflynn/stats"

	"github.com/kartikp36/github-org-stats/internal/models"
)

// Aggregate is the working contributor map of a single run. It is an
// insertion-ordered map keyed by login, owned by one run only; merging
// is a pure additive fold with no I/O.
type Aggregate struct {
	blacklist models.Blacklist
	entries   map[string]*models.ContributorStats
	order     []string
}

func NewAggregate(blacklist models.Blacklist) *Aggregate {
	return &Aggregate{
		blacklist: blacklist,
		entries:   make(map[string]*models.ContributorStats),
	}
}

// Merge folds one repository's contributor entries into the map.
// Blacklisted users, blacklisted repositories, and entries without an
// attributable login are skipped. Totals are order-independent; which
// user is first seen is not, so callers fold in repository-list order.
func (a *Aggregate) Merge(repoName string, contributors []models.RepoContributorStats) {
	if a.blacklist.MatchesRepo(repoName) {
		return
	}

	for _, c := range contributors {
		if c.User == "" || a.blacklist.MatchesUser(c.User) {
			continue
		}

		entry, ok := a.entries[c.User]
		if !ok {
			entry = &models.ContributorStats{User: c.User}
			a.entries[c.User] = entry
			a.order = append(a.order, c.User)
		}
		entry.Commits += c.Commits
		entry.LinesAdded += c.LinesAdded
		entry.LinesRemoved += c.LinesRemoved
	}
}

// Users returns the aggregated logins in first-seen order.
func (a *Aggregate) Users() []string {
	users := make([]string, len(a.order))
	copy(users, a.order)
	return users
}

// SetReviews back-fills the review count of an already aggregated user.
func (a *Aggregate) SetReviews(user string, count int) {
	if entry, ok := a.entries[user]; ok {
		entry.Reviews = count
	}
}

// Len returns the number of distinct aggregated contributors.
func (a *Aggregate) Len() int {
	return len(a.order)
}

// Rank sorts contributors by commit count descending and truncates to
// the first top entries. The sort is stable: contributors with equal
// commit counts keep their first-seen order. A non-positive top falls
// back to the default.
func (a *Aggregate) Rank(top int) []models.ContributorStats {
	if top <= 0 {
		top = models.DefaultTop
	}

	ranked := make([]models.ContributorStats, 0, len(a.order))
	for _, user := range a.order {
		ranked = append(ranked, *a.entries[user])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Commits > ranked[j].Commits
	})

	if len(ranked) > top {
		ranked = ranked[:top]
	}
	return ranked
}

// Summary describes the full aggregated set, before truncation.
func (a *Aggregate) Summary() *models.RunSummary {
	summary := &models.RunSummary{Contributors: len(a.order)}
	if len(a.order) == 0 {
		return summary
	}

	commits := make(mstats.Float64Data, 0, len(a.order))
	for _, user := range a.order {
		entry := a.entries[user]
		summary.TotalCommits += entry.Commits
		commits = append(commits, float64(entry.Commits))
	}

	if mean, err := mstats.Mean(commits); err == nil {
		summary.MeanCommits = mean
	}
	if median, err := mstats.Median(commits); err == nil {
		summary.MedianCommits = median
	}
	return summary
}
