package repository

import (
	"context"

	"github.com/maxviazov/fantasy-cricket-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// PlayerSortFields are the listing columns a client may sort by.
var PlayerSortFields = []string{
	"name",
	"category",
	"player_value",
	"player_points",
	"batting_average",
	"batting_strike_rate",
	"economy_rate",
	"total_runs",
	"wickets",
}

// IsPlayerSortField reports whether field is in PlayerSortFields.
func IsPlayerSortField(field string) bool {
	for _, f := range PlayerSortFields {
		if f == field {
			return true
		}
	}
	return false
}

// PlayerRepository declares persistence operations for catalog players.
// Players are always written whole: raw stats and the derived metrics computed from them.
// I return domain models and surface domain errors from errors.go rather than PG codes.
type PlayerRepository interface {
	Create(ctx context.Context, p model.Player) (model.Player, error)
	// CreateMany inserts all players atomically and returns them in input order.
	CreateMany(ctx context.Context, ps []model.Player) ([]model.Player, error)
	GetByID(ctx context.Context, id int64) (model.Player, error)
	// GetByIDForUpdate is GetByID with a row lock when called inside WithinTx.
	GetByIDForUpdate(ctx context.Context, id int64) (model.Player, error)
	// GetByIDs returns the players that exist among ids, ordered by id. Missing ids are skipped.
	GetByIDs(ctx context.Context, ids []int64) ([]model.Player, error)
	List(ctx context.Context, f model.PlayerFilter, p Page) (PageResult[model.Player], error)
	Update(ctx context.Context, p model.Player) (model.Player, error)
	Delete(ctx context.Context, id int64) error
	// Summary aggregates persisted raw stats across every player.
	Summary(ctx context.Context) (model.TournamentSummary, error)
}
