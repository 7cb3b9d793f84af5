package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/maxviazov/fantasy-cricket-service/internal/model"
	"github.com/maxviazov/fantasy-cricket-service/internal/repository"
	"github.com/rs/zerolog"
)

// Default squad rules: a full team of eleven on a 9,000,000 budget.
const (
	DefaultSquadBudget int64 = 9_000_000
	DefaultSquadSize         = 11
)

// SquadRules bounds a squad quote.
type SquadRules struct {
	Budget int64
	Size   int
}

func DefaultSquadRules() SquadRules {
	return SquadRules{Budget: DefaultSquadBudget, Size: DefaultSquadSize}
}

type squadService struct {
	players repository.PlayerRepository
	rules   SquadRules
	log     zerolog.Logger
}

func NewSquadService(players repository.PlayerRepository, rules SquadRules, logger zerolog.Logger) SquadService {
	if rules.Budget <= 0 {
		rules.Budget = DefaultSquadBudget
	}
	if rules.Size <= 0 {
		rules.Size = DefaultSquadSize
	}
	l := logger.With().Str("module", "service").Str("component", "squad").Logger()
	return &squadService{players: players, rules: rules, log: l}
}

// QuoteSquad prices a partial or full squad against the budget. It never writes anything:
// going over budget is reported through WithinBudget, not as an error.
func (s *squadService) QuoteSquad(ctx context.Context, playerIDs []int64) (model.SquadQuote, error) {
	if ferrs := s.validatePicks(playerIDs); len(ferrs) > 0 {
		return model.SquadQuote{}, newInvalidInput(ferrs)
	}

	found, err := s.players.GetByIDs(ctx, playerIDs)
	if err != nil {
		s.log.Error().Err(err).Int("picks", len(playerIDs)).Msg("load squad players failed")
		return model.SquadQuote{}, err
	}
	byID := make(map[int64]model.Player, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	var unknown []string
	for _, id := range playerIDs {
		if _, ok := byID[id]; !ok {
			unknown = append(unknown, strconv.FormatInt(id, 10))
		}
	}
	if len(unknown) > 0 {
		return model.SquadQuote{}, newInvalidInput([]FieldError{{
			Field:   "player_ids",
			Message: "unknown players: " + strings.Join(unknown, ", "),
		}})
	}

	q := model.SquadQuote{
		PlayerIDs:   playerIDs,
		PlayerCount: len(playerIDs),
		Budget:      s.rules.Budget,
	}
	for _, id := range playerIDs {
		p := byID[id]
		q.TotalValue += p.PlayerValue
		q.TotalPoints += p.PlayerPoints
		switch p.Category {
		case model.CategoryBowler:
			q.Composition.Bowlers++
		case model.CategoryAllRounder:
			q.Composition.AllRounders++
		default:
			q.Composition.Batsmen++
		}
	}
	q.Remaining = q.Budget - q.TotalValue
	q.WithinBudget = q.Remaining >= 0

	s.log.Debug().Int("picks", q.PlayerCount).Int64("total_value", q.TotalValue).Bool("within_budget", q.WithinBudget).Msg("squad quoted")
	return q, nil
}

func (s *squadService) validatePicks(ids []int64) []FieldError {
	if len(ids) == 0 {
		return []FieldError{{Field: "player_ids", Message: "must contain at least one player"}}
	}
	var ferrs []FieldError
	if len(ids) > s.rules.Size {
		ferrs = append(ferrs, FieldError{Field: "player_ids", Message: fmt.Sprintf("must contain at most %d players", s.rules.Size)})
	}
	seen := make(map[int64]struct{}, len(ids))
	for i, id := range ids {
		if id <= 0 {
			ferrs = append(ferrs, FieldError{Field: fmt.Sprintf("player_ids[%d]", i), Message: "must be > 0"})
			continue
		}
		if _, dup := seen[id]; dup {
			ferrs = append(ferrs, FieldError{Field: fmt.Sprintf("player_ids[%d]", i), Message: "duplicate player " + strconv.FormatInt(id, 10)})
			continue
		}
		seen[id] = struct{}{}
	}
	return ferrs
}
