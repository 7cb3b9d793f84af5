package service

import (
	"context"

	"github.com/maxviazov/fantasy-cricket-service/internal/model"
	"github.com/maxviazov/fantasy-cricket-service/internal/repository"
	"github.com/rs/zerolog"
)

type tournamentService struct {
	players repository.PlayerRepository
	cache   SummaryCache
	log     zerolog.Logger
}

func NewTournamentService(players repository.PlayerRepository, cache SummaryCache, logger zerolog.Logger) TournamentService {
	l := logger.With().Str("module", "service").Str("component", "tournament").Logger()
	return &tournamentService{players: players, cache: cache, log: l}
}

// GetSummary reads through the cache. Cache errors degrade to a database read.
func (s *tournamentService) GetSummary(ctx context.Context) (model.TournamentSummary, error) {
	cached, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("summary cache read failed")
	}
	if ok {
		return cached, nil
	}

	summary, err := s.players.Summary(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("tournament summary failed")
		return model.TournamentSummary{}, err
	}
	// A write that invalidated between Summary and Set leaves this value stale until the TTL expires.
	if err := s.cache.Set(ctx, summary); err != nil {
		s.log.Warn().Err(err).Msg("summary cache write failed")
	}
	return summary, nil
}
