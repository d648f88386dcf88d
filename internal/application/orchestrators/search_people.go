package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"celltrack/internal/domain/person"
)

// PersonSearchStore defines the person store interface needed for the
// inviter typeahead.
type PersonSearchStore interface {
	SearchByName(ctx context.Context, query string, limit int) ([]person.Summary, error)
}

// SearchPeopleInput carries input for the person search.
type SearchPeopleInput struct {
	Query string
	Limit int
}

// SearchPeopleResult carries the shortlist of matching people.
type SearchPeopleResult struct {
	People []person.Summary
}

// SearchPeopleDeps holds dependencies for SearchPeople. Fallback is an
// optional secondary source consulted when the primary fetch fails.
type SearchPeopleDeps struct {
	Primary  PersonSearchStore
	Fallback PersonSearchStore
}

// ExecuteSearchPeople performs a name search for the inviter typeahead.
// A fetch failure is transient: the fallback source is tried, then an
// empty shortlist is returned. The caller never sees a hard failure.
// PRE: Query may be empty (returns an empty shortlist)
// POST: Returns up to Limit matches; never returns a nil slice
func ExecuteSearchPeople(ctx context.Context, input SearchPeopleInput, deps SearchPeopleDeps) (SearchPeopleResult, error) {
	empty := SearchPeopleResult{People: []person.Summary{}}

	query := strings.TrimSpace(input.Query)
	if query == "" {
		return empty, nil
	}
	if input.Limit <= 0 {
		input.Limit = 10
	}

	people, err := deps.Primary.SearchByName(ctx, query, input.Limit)
	if err != nil {
		slog.Warn("person_search_primary_failed", "error", err.Error(), "query", query)
		if deps.Fallback == nil {
			return empty, nil
		}
		people, err = deps.Fallback.SearchByName(ctx, query, input.Limit)
		if err != nil {
			slog.Warn("person_search_fallback_failed", "error", err.Error(), "query", query)
			return empty, nil
		}
	}
	if people == nil {
		people = []person.Summary{}
	}

	return SearchPeopleResult{People: people}, nil
}
