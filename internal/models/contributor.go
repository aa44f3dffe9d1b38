package models

// Repository is a single organization repository as seen by the lister.
type Repository struct {
	Name string `json:"name"`
	Fork bool   `json:"fork"`
}

// ContributorStats holds the aggregated activity of one contributor
// across every repository of the organization.
type ContributorStats struct {
	User         string `json:"user"`
	Commits      int    `json:"commits"`
	LinesAdded   int    `json:"linesAdded"`
	LinesRemoved int    `json:"linesRemoved"`
	Reviews      int    `json:"reviews"`
}

// RepoContributorStats is the per-repository slice of a contributor's
// activity, before aggregation. Weekly line counts are already summed.
type RepoContributorStats struct {
	User         string
	Commits      int
	LinesAdded   int
	LinesRemoved int
}

// RunSummary describes the whole aggregated contributor set, computed
// before top-N truncation.
type RunSummary struct {
	Contributors  int     `json:"contributors"`
	TotalCommits  int     `json:"totalCommits"`
	MeanCommits   float64 `json:"meanCommits"`
	MedianCommits float64 `json:"medianCommits"`
}

// RunConfig is the immutable configuration of one aggregation run.
type RunConfig struct {
	Org            string
	Since          string // opaque, echoed back to the caller
	IncludeReviews bool
	ExcludeForks   bool
	Blacklist      Blacklist
	Top            int
	Token          string
}
