package service

import (
	"strings"

	"github.com/maxviazov/fantasy-cricket-service/internal/model"
	"github.com/maxviazov/fantasy-cricket-service/internal/repository"
	"github.com/maxviazov/fantasy-cricket-service/internal/scoring"
)

const (
	defaultSort  = "player_value"
	defaultOrder = "desc"
)

// normalizeQuery turns a client listing request into a repository filter.
// Empty sort means player_value; empty order means descending.
func normalizeQuery(q PlayerQuery) (model.PlayerFilter, []FieldError) {
	var ferrs []FieldError
	f := model.PlayerFilter{Search: strings.TrimSpace(q.Search)}

	if c := strings.TrimSpace(q.Category); c != "" {
		if !IsKnownCategory(c) {
			ferrs = append(ferrs, FieldError{Field: "category", Message: "must be one of Batsman, Bowler, All-rounder"})
		} else {
			f.Category = scoring.NormalizeCategory(c)
		}
	}

	f.Sort = strings.ToLower(strings.TrimSpace(q.Sort))
	if f.Sort == "" {
		f.Sort = defaultSort
	}
	if !repository.IsPlayerSortField(f.Sort) {
		ferrs = append(ferrs, FieldError{Field: "sort", Message: "must be one of " + strings.Join(repository.PlayerSortFields, ", ")})
	}

	order := strings.ToLower(strings.TrimSpace(q.Order))
	if order == "" {
		order = defaultOrder
	}
	switch order {
	case "asc":
	case "desc":
		f.Desc = true
	default:
		ferrs = append(ferrs, FieldError{Field: "order", Message: "must be asc or desc"})
	}
	return f, ferrs
}

// IsKnownCategory reports whether s names a category, using the same substring rules as ingest.
// Listing filters are strict: unlike ingest, unknown text is rejected instead of becoming Batsman.
func IsKnownCategory(s string) bool {
	l := strings.ToLower(strings.TrimSpace(s))
	for _, part := range []string{"bat", "bowl", "all", "rounder"} {
		if strings.Contains(l, part) {
			return true
		}
	}
	return false
}

// ingestFieldErrors converts a rejected scoring.IngestResult into FieldErrors:
// missing identity fields first, then rejected counters.
func ingestFieldErrors(res scoring.IngestResult) []FieldError {
	out := make([]FieldError, 0, len(res.Missing)+len(res.Invalid))
	for _, m := range res.Missing {
		out = append(out, FieldError{Field: m, Message: "is required"})
	}
	for _, fi := range res.Invalid {
		out = append(out, FieldError{Field: fi.Field, Message: fi.Message})
	}
	return out
}

func validateID(id int64) error {
	if id <= 0 {
		return newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return nil
}
