package models

import "strings"

// RuleKind says which side of a contribution a blacklist rule excludes.
type RuleKind string

const (
	RuleKindUser   RuleKind = "user"
	RuleKindRepo   RuleKind = "repo"
	RuleKindEither RuleKind = "either"
)

// Rule is a single exclusion entry. Matching is exact-string equality;
// prefixed rules ("user:alice", "repo:legacy") bind to one side, bare
// rules match either a login or a repository name.
type Rule struct {
	Kind  RuleKind
	Value string
}

func (r Rule) String() string {
	switch r.Kind {
	case RuleKindUser:
		return "user:" + r.Value
	case RuleKindRepo:
		return "repo:" + r.Value
	default:
		return r.Value
	}
}

// Blacklist is an ordered set of exclusion rules.
type Blacklist []Rule

// ParseBlacklist parses a comma-separated rule string. Empty tokens are
// dropped, surrounding whitespace is ignored.
func ParseBlacklist(raw string) Blacklist {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var rules Blacklist
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		switch {
		case strings.HasPrefix(token, "user:"):
			rules = append(rules, Rule{Kind: RuleKindUser, Value: strings.TrimPrefix(token, "user:")})
		case strings.HasPrefix(token, "repo:"):
			rules = append(rules, Rule{Kind: RuleKindRepo, Value: strings.TrimPrefix(token, "repo:")})
		default:
			rules = append(rules, Rule{Kind: RuleKindEither, Value: token})
		}
	}
	return rules
}

// MatchesUser reports whether the login is excluded by any rule.
func (b Blacklist) MatchesUser(login string) bool {
	if login == "" {
		return false
	}
	for _, rule := range b {
		if rule.Kind == RuleKindRepo {
			continue
		}
		if rule.Value == login {
			return true
		}
	}
	return false
}

// MatchesRepo reports whether the repository name is excluded by any rule.
func (b Blacklist) MatchesRepo(name string) bool {
	if name == "" {
		return false
	}
	for _, rule := range b {
		if rule.Kind == RuleKindUser {
			continue
		}
		if rule.Value == name {
			return true
		}
	}
	return false
}

// Strings returns the rules in their original token form, for echoing
// back in API responses.
func (b Blacklist) Strings() []string {
	tokens := make([]string, 0, len(b))
	for _, rule := range b {
		tokens = append(tokens, rule.String())
	}
	return tokens
}
