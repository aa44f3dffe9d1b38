package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

const DefaultTop = 3

// StatsRequest is the body of POST /api/stats. Top is kept raw because
// clients send it as a number, a numeric string, or not at all.
type StatsRequest struct {
	Org            string          `json:"org"`
	Since          string          `json:"since"`
	IncludeReviews bool            `json:"includeReviews"`
	ExcludeForks   bool            `json:"excludeForks"`
	Blacklist      string          `json:"blacklist"`
	Top            json.RawMessage `json:"top"`
	Token          string          `json:"token"`
}

// ResolveTop coerces the raw top value to a positive integer. Missing,
// non-numeric, or non-positive input resolves to DefaultTop.
func (r *StatsRequest) ResolveTop() int {
	return CoerceTop(r.Top)
}

// CoerceTop applies the number-like coercion rule for the top parameter.
func CoerceTop(raw json.RawMessage) int {
	if len(raw) == 0 {
		return DefaultTop
	}

	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return DefaultTop
	}
	text = strings.Trim(text, `"`)

	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return DefaultTop
	}
	if top := int(value); top > 0 {
		return top
	}
	return DefaultTop
}
