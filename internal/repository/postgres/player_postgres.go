package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/fantasy-cricket-service/internal/model"
	"github.com/maxviazov/fantasy-cricket-service/internal/repository"
)

const playerColumns = `id, name, university, category,
	total_runs, balls_faced, innings_played, wickets, overs_bowled, runs_conceded,
	batting_strike_rate, batting_average, bowling_strike_rate, economy_rate, player_points, player_value,
	created_at, updated_at`

const insertPlayerSQL = `INSERT INTO players (name, university, category,
	total_runs, balls_faced, innings_played, wickets, overs_bowled, runs_conceded,
	batting_strike_rate, batting_average, bowling_strike_rate, economy_rate, player_points, player_value)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	RETURNING ` + playerColumns

type playerRepository struct {
	pool *pgxpool.Pool
	tx   repository.TxManager
}

func NewPlayerRepository(pool *pgxpool.Pool) repository.PlayerRepository {
	return &playerRepository{pool: pool, tx: NewTxManager(pool)}
}

// scanPlayer reads one row selected with playerColumns, plus any trailing extras.
func scanPlayer(row pgx.Row, extra ...any) (model.Player, error) {
	var (
		p        model.Player
		category string
	)
	dest := []any{
		&p.ID, &p.Name, &p.University, &category,
		&p.TotalRuns, &p.BallsFaced, &p.InningsPlayed, &p.Wickets, &p.OversBowled, &p.RunsConceded,
		&p.BattingStrikeRate, &p.BattingAverage, &p.BowlingStrikeRate, &p.EconomyRate, &p.PlayerPoints, &p.PlayerValue,
		&p.CreatedAt, &p.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return model.Player{}, err
	}
	p.Category = model.Category(category)
	return p, nil
}

func insertArgs(p model.Player) []any {
	return []any{
		p.Name, p.University, string(p.Category),
		p.TotalRuns, p.BallsFaced, p.InningsPlayed, p.Wickets, p.OversBowled, p.RunsConceded,
		p.BattingStrikeRate, p.BattingAverage, p.BowlingStrikeRate, p.EconomyRate, p.PlayerPoints, p.PlayerValue,
	}
}

func (r *playerRepository) Create(ctx context.Context, p model.Player) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	exec := getQ(ctx, r.pool)
	out, err := scanPlayer(exec.QueryRow(ctx, insertPlayerSQL, insertArgs(p)...))
	if err != nil {
		return model.Player{}, repository.MapPgError(err)
	}
	return out, nil
}

// CreateMany sends every insert in one batch inside a transaction, so either all rows land or none do.
func (r *playerRepository) CreateMany(ctx context.Context, ps []model.Player) ([]model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	if len(ps) == 0 {
		return []model.Player{}, nil
	}
	out := make([]model.Player, 0, len(ps))
	err := r.tx.WithinTx(ctx, func(ctx context.Context) error {
		b := &pgx.Batch{}
		for _, p := range ps {
			b.Queue(insertPlayerSQL, insertArgs(p)...)
		}
		br := getQ(ctx, r.pool).SendBatch(ctx, b)
		for i := range ps {
			created, err := scanPlayer(br.QueryRow())
			if err != nil {
				_ = br.Close()
				return fmt.Errorf("insert player %d: %w", i, repository.MapPgError(err))
			}
			out = append(out, created)
		}
		return br.Close()
	})
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

func (r *playerRepository) GetByID(ctx context.Context, id int64) (model.Player, error) {
	return r.getByID(ctx, id, false)
}

func (r *playerRepository) GetByIDForUpdate(ctx context.Context, id int64) (model.Player, error) {
	return r.getByID(ctx, id, true)
}

func (r *playerRepository) getByID(ctx context.Context, id int64, lock bool) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	exec := getQ(ctx, r.pool)
	out, err := scanPlayer(exec.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Player{}, repository.ErrNotFound
		}
		return model.Player{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *playerRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.Player{}, nil
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = ANY($1) ORDER BY id`, ids,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	out := make([]model.Player, 0, len(ids))
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

// List filters by case-insensitive name or university substring and exact category.
// f.Sort must be one of repository.PlayerSortFields; anything else falls back to player_value.
func (r *playerRepository) List(ctx context.Context, f model.PlayerFilter, p repository.Page) (repository.PageResult[model.Player], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Player]{}, err
	}
	p = p.Normalize()

	sort := f.Sort
	if !repository.IsPlayerSortField(sort) {
		sort = "player_value"
	}
	dir := "ASC"
	if f.Desc {
		dir = "DESC"
	}

	search := ""
	if s := strings.TrimSpace(f.Search); s != "" {
		search = "%" + escapeLike(s) + "%"
	}

	query := `SELECT ` + playerColumns + `, COUNT(*) OVER() AS total
		FROM players
		WHERE ($1::text = '' OR name ILIKE $1 OR university ILIKE $1)
		  AND ($2::text = '' OR category = $2)
		ORDER BY ` + sort + ` ` + dir + `, id
		LIMIT $3 OFFSET $4`

	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, query, search, string(f.Category), p.Limit, p.Offset)
	if err != nil {
		return repository.PageResult[model.Player]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res := repository.PageResult[model.Player]{Items: make([]model.Player, 0, p.Limit)}
	for rows.Next() {
		var total int
		it, err := scanPlayer(rows, &total)
		if err != nil {
			return repository.PageResult[model.Player]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, it)
		res.Total = total
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Player]{}, repository.MapPgError(err)
	}
	return res, nil
}

// Update overwrites every stored column of p.ID and bumps updated_at.
func (r *playerRepository) Update(ctx context.Context, p model.Player) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE players SET
			name = $2, university = $3, category = $4,
			total_runs = $5, balls_faced = $6, innings_played = $7, wickets = $8, overs_bowled = $9, runs_conceded = $10,
			batting_strike_rate = $11, batting_average = $12, bowling_strike_rate = $13, economy_rate = $14,
			player_points = $15, player_value = $16,
			updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+playerColumns,
		append([]any{p.ID}, insertArgs(p)...)...,
	)
	out, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Player{}, repository.ErrNotFound
		}
		return model.Player{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *playerRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Summary totals raw runs and wickets and picks the leader for each.
// Ties go to the lowest id; a leader needs a strictly positive count.
func (r *playerRepository) Summary(ctx context.Context) (model.TournamentSummary, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.TournamentSummary{}, err
	}
	exec := getQ(ctx, r.pool)

	var out model.TournamentSummary
	err := exec.QueryRow(ctx,
		`SELECT COUNT(*)::INT,
		        COALESCE(SUM(total_runs), 0)::BIGINT,
		        COALESCE(SUM(wickets), 0)::BIGINT
		 FROM players`,
	).Scan(&out.TotalPlayers, &out.TotalRuns, &out.TotalWickets)
	if err != nil {
		return model.TournamentSummary{}, repository.MapPgError(err)
	}

	if out.HighestRunScorer, err = topBy(ctx, exec, "total_runs"); err != nil {
		return model.TournamentSummary{}, err
	}
	if out.HighestWicketTaker, err = topBy(ctx, exec, "wickets"); err != nil {
		return model.TournamentSummary{}, err
	}
	return out, nil
}

// topBy is only called with fixed column names, never client input.
func topBy(ctx context.Context, exec q, column string) (*model.PlayerHighlight, error) {
	var h model.PlayerHighlight
	err := exec.QueryRow(ctx,
		`SELECT id, name, university, `+column+`
		 FROM players
		 WHERE `+column+` > 0
		 ORDER BY `+column+` DESC, id
		 LIMIT 1`,
	).Scan(&h.PlayerID, &h.Name, &h.University, &h.Value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, repository.MapPgError(err)
	}
	return &h, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

var _ repository.PlayerRepository = (*playerRepository)(nil)
