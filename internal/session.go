package internal

import "sort"

// SearchSession represents one query occurrence and the ranked results shown for it
type SearchSession struct {
	ID         string      `json:"id" msgpack:"id"`
	Query      string      `json:"query" msgpack:"query"`
	WebResults []WebResult `json:"web_results" msgpack:"web_results"`
}

// WebResult represents a single ranked result of a session.
// Its position in SearchSession.WebResults is its rank.
type WebResult struct {
	ID    string `json:"id" msgpack:"id"`
	Click bool   `json:"click" msgpack:"click"`
}

// NewSearchSession creates a session with unclicked results in the given order
func NewSearchSession(id, query string, resultIDs ...string) *SearchSession {
	results := make([]WebResult, len(resultIDs))
	for i, rid := range resultIDs {
		results[i] = WebResult{ID: rid}
	}
	return &SearchSession{
		ID:         id,
		Query:      query,
		WebResults: results,
	}
}

// Clicks returns the observed click vector
func (s *SearchSession) Clicks() []bool {
	clicks := make([]bool, len(s.WebResults))
	for i, r := range s.WebResults {
		clicks[i] = r.Click
	}
	return clicks
}

// FirstClick returns the rank of the first clicked result, or -1
func (s *SearchSession) FirstClick() int {
	for i, r := range s.WebResults {
		if r.Click {
			return i
		}
	}
	return -1
}

// LastClick returns the rank of the last clicked result, or -1
func (s *SearchSession) LastClick() int {
	for i := len(s.WebResults) - 1; i >= 0; i-- {
		if s.WebResults[i].Click {
			return i
		}
	}
	return -1
}

// QuerySet is a set of distinct query strings
type QuerySet map[string]struct{}

// NewQuerySet creates an empty QuerySet
func NewQuerySet() QuerySet {
	return make(QuerySet)
}

// Add inserts a query and reports whether it was not present before
func (qs QuerySet) Add(query string) bool {
	if _, ok := qs[query]; ok {
		return false
	}
	qs[query] = struct{}{}
	return true
}

// Contains reports whether the query is in the set
func (qs QuerySet) Contains(query string) bool {
	_, ok := qs[query]
	return ok
}

// Len returns the number of distinct queries
func (qs QuerySet) Len() int {
	return len(qs)
}

// Sorted returns the queries in lexical order
func (qs QuerySet) Sorted() []string {
	out := make([]string, 0, len(qs))
	for q := range qs {
		out = append(out, q)
	}
	sort.Strings(out)
	return out
}

// UniqueQueries collects the distinct queries of the given sessions
func UniqueQueries(sessions []*SearchSession) QuerySet {
	qs := NewQuerySet()
	for _, s := range sessions {
		qs.Add(s.Query)
	}
	return qs
}
