package service

import (
	"context"
	"time"

	"github.com/maxviazov/fantasy-cricket-service/internal/model"
	"github.com/maxviazov/fantasy-cricket-service/internal/repository"
	"github.com/maxviazov/fantasy-cricket-service/internal/scoring"
	"github.com/rs/zerolog"
)

type playerService struct {
	players repository.PlayerRepository
	tx      repository.TxManager
	cache   SummaryCache
	workers int
	log     zerolog.Logger
}

// NewPlayerService wires the catalog use cases. workers bounds concurrent row ingestion on import;
// zero means GOMAXPROCS.
func NewPlayerService(players repository.PlayerRepository, tx repository.TxManager, cache SummaryCache, workers int, logger zerolog.Logger) PlayerService {
	l := logger.With().Str("module", "service").Str("component", "player").Logger()
	return &playerService{players: players, tx: tx, cache: cache, workers: workers, log: l}
}

func (s *playerService) CreatePlayer(ctx context.Context, raw map[string]any) (model.Player, error) {
	start := time.Now()

	res := scoring.Ingest(raw)
	if !res.Valid {
		s.log.Debug().Strs("missing", res.Missing).Int("invalid", len(res.Invalid)).Msg("player validation failed")
		return model.Player{}, newInvalidInputMsg(res.Error, ingestFieldErrors(res))
	}

	out, err := s.players.Create(ctx, res.Player)
	if err != nil {
		s.log.Error().Err(err).Str("name", res.Player.Name).Str("university", res.Player.University).Msg("create player failed")
		return model.Player{}, err
	}
	s.invalidateSummary(ctx)
	s.log.Info().Dur("took", time.Since(start)).Int64("player_id", out.ID).Int64("player_value", out.PlayerValue).Msg("player created")
	return out, nil
}

// ImportPlayers ingests every row, persists the valid ones atomically and reports the rest.
// One bad row never blocks the others; a storage failure fails the whole import.
func (s *playerService) ImportPlayers(ctx context.Context, rows []map[string]any) (model.ImportReport, error) {
	start := time.Now()
	if len(rows) == 0 {
		return model.ImportReport{}, newInvalidInput([]FieldError{{Field: "players", Message: "must contain at least one row"}})
	}

	batch, err := scoring.IngestBatch(ctx, rows, s.workers)
	if err != nil {
		return model.ImportReport{}, err
	}

	report := model.ImportReport{
		Created:      []model.Player{},
		Invalid:      batch.Invalid,
		InvalidCount: len(batch.Invalid),
	}
	if len(batch.Players) > 0 {
		created, err := s.players.CreateMany(ctx, batch.Players)
		if err != nil {
			s.log.Error().Err(err).Int("rows", len(batch.Players)).Msg("import players failed")
			return model.ImportReport{}, err
		}
		report.Created = created
		report.CreatedCount = len(created)
		s.invalidateSummary(ctx)
	}

	s.log.Info().
		Dur("took", time.Since(start)).
		Int("rows", len(rows)).
		Int("created", report.CreatedCount).
		Int("invalid", report.InvalidCount).
		Msg("players imported")
	return report, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id int64) (model.Player, error) {
	if err := validateID(id); err != nil {
		return model.Player{}, err
	}
	return s.players.GetByID(ctx, id)
}

func (s *playerService) ListPlayers(ctx context.Context, q PlayerQuery, page repository.Page) (repository.PageResult[model.Player], error) {
	f, ferrs := normalizeQuery(q)
	if err := newInvalidInput(ferrs); err != nil {
		return repository.PageResult[model.Player]{}, err
	}
	p := page.Normalize()
	res, err := s.players.List(ctx, f, p)
	if err != nil {
		s.log.Error().Err(err).Str("sort", f.Sort).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list players failed")
		return repository.PageResult[model.Player]{}, err
	}
	return res, nil
}

// UpdatePlayer merges patch onto the stored raw stats and recomputes every derived field,
// so a player never carries metrics computed from an older record.
func (s *playerService) UpdatePlayer(ctx context.Context, id int64, patch map[string]any) (model.Player, error) {
	if err := validateID(id); err != nil {
		return model.Player{}, err
	}
	if len(patch) == 0 {
		return model.Player{}, newInvalidInput([]FieldError{{Field: "body", Message: "must contain at least one field"}})
	}

	var out model.Player
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.players.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		merged, touched := scoring.Merge(existing, patch)
		if !touched {
			return newInvalidInput([]FieldError{{Field: "body", Message: "contains no updatable fields"}})
		}
		res := scoring.Ingest(merged)
		if !res.Valid {
			return newInvalidInputMsg(res.Error, ingestFieldErrors(res))
		}
		next := res.Player
		next.ID = existing.ID
		next.CreatedAt = existing.CreatedAt
		out, err = s.players.Update(ctx, next)
		return err
	})
	if err != nil {
		s.log.Debug().Err(err).Int64("player_id", id).Msg("update player failed")
		return model.Player{}, err
	}
	s.invalidateSummary(ctx)
	s.log.Info().Int64("player_id", id).Int64("player_value", out.PlayerValue).Msg("player updated")
	return out, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int64) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.players.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateSummary(ctx)
	s.log.Info().Int64("player_id", id).Msg("player deleted")
	return nil
}

// invalidateSummary never fails the write; a stale summary expires with its TTL.
func (s *playerService) invalidateSummary(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("summary cache invalidation failed")
	}
}
