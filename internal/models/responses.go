package models

// StatsData is the payload of a successful aggregation run, echoing the
// resolved request parameters next to the ranked contributor list.
type StatsData struct {
	Org            string             `json:"org"`
	Since          string             `json:"since,omitempty"`
	IncludeReviews bool               `json:"includeReviews"`
	ExcludeForks   bool               `json:"excludeForks"`
	Blacklist      []string           `json:"blacklist"`
	Top            int                `json:"top"`
	Stats          []ContributorStats `json:"stats"`
	Summary        *RunSummary        `json:"summary,omitempty"`
}

// StatsResponse is the success envelope of POST /api/stats.
type StatsResponse struct {
	Message string     `json:"message"`
	Data    *StatsData `json:"data"`
	Warning string     `json:"warning,omitempty"`
}

// ErrorResponse is the failure envelope shared by all API routes.
type ErrorResponse struct {
	Error   string `json:"error"`
	Warning string `json:"warning,omitempty"`
}

// NoTokenWarning is attached to responses whenever the run was made
// without a credential, successful or not.
const NoTokenWarning = "No GitHub token provided. Rate limits may apply."
