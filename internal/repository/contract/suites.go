package contract

import (
	"context"
	"errors"
	"testing"

	"github.com/maxviazov/fantasy-cricket-service/internal/model"
	"github.com/maxviazov/fantasy-cricket-service/internal/repository"
)

type PlayerFactory func(t *testing.T) (repository.PlayerRepository, func())

type TxFactory func(t *testing.T) (tx repository.TxManager, players repository.PlayerRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func samplePlayer(name string, category model.Category, runs, wickets int) model.Player {
	return model.Player{
		Name:       name,
		University: "University of Moratuwa",
		Category:   category,
		PerformanceRecord: model.PerformanceRecord{
			TotalRuns:     runs,
			BallsFaced:    runs + 20,
			InningsPlayed: 5,
			Wickets:       wickets,
			OversBowled:   float64(wickets) * 3,
			RunsConceded:  wickets * 20,
		},
		DerivedMetrics: model.DerivedMetrics{PlayerPoints: float64(runs) / 10, PlayerValue: int64(runs) * 1000},
	}
}

func RunPlayerRepositoryContract(t *testing.T, makeRepo PlayerFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		in := samplePlayer("Kasun Perera", model.CategoryAllRounder, 240, 6)
		in.BattingStrikeRate = 92.3
		created, err := repo.Create(ctx, in)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if created.ID == 0 || created.CreatedAt.IsZero() {
			t.Fatalf("expected id and timestamps, got %+v", created)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Name != in.Name || got.Category != in.Category || got.PerformanceRecord != in.PerformanceRecord {
			t.Fatalf("mismatch: %+v", got)
		}
		if got.BattingStrikeRate != 92.3 || got.PlayerValue != in.PlayerValue {
			t.Fatalf("derived metrics not persisted: %+v", got.DerivedMetrics)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("unknown_category_conflict", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.Create(context.Background(), samplePlayer("X", model.Category("Wicketkeeper"), 1, 0))
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict on check violation, got %v", err)
		}
	})

	t.Run("negative_counter_conflict", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.Create(context.Background(), samplePlayer("Neg", model.CategoryBatsman, -5, 0))
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict on negative counter, got %v", err)
		}
	})

	t.Run("create_many_in_order", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		in := []model.Player{
			samplePlayer("A", model.CategoryBatsman, 100, 0),
			samplePlayer("B", model.CategoryBowler, 10, 9),
			samplePlayer("C", model.CategoryAllRounder, 50, 4),
		}
		out, err := repo.CreateMany(ctx, in)
		if err != nil {
			t.Fatalf("create many: %v", err)
		}
		if len(out) != 3 {
			t.Fatalf("expected 3 players, got %d", len(out))
		}
		for i := range in {
			if out[i].Name != in[i].Name || out[i].ID == 0 {
				t.Fatalf("row %d mismatch: %+v", i, out[i])
			}
		}
	})

	t.Run("create_many_is_atomic", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		in := []model.Player{
			samplePlayer("Good", model.CategoryBatsman, 100, 0),
			samplePlayer("Bad", model.Category("Keeper"), 10, 0),
		}
		if _, err := repo.CreateMany(ctx, in); !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
		res, err := repo.List(ctx, model.PlayerFilter{}, repository.Page{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 0 {
			t.Fatalf("expected no rows after failed batch, got %d", res.Total)
		}
	})

	t.Run("get_by_ids_skips_missing", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		a, _ := repo.Create(ctx, samplePlayer("A", model.CategoryBatsman, 1, 0))
		b, _ := repo.Create(ctx, samplePlayer("B", model.CategoryBatsman, 2, 0))
		got, err := repo.GetByIDs(ctx, []int64{b.ID, 777777, a.ID})
		if err != nil {
			t.Fatalf("get by ids: %v", err)
		}
		if len(got) != 2 || got[0].ID != a.ID || got[1].ID != b.ID {
			t.Fatalf("unexpected players: %+v", got)
		}
	})

	t.Run("list_filter_sort_paginate", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		seed := []model.Player{
			samplePlayer("Dimuth Silva", model.CategoryBatsman, 300, 0),
			samplePlayer("Lahiru 50%", model.CategoryBowler, 20, 12),
			samplePlayer("Nuwan Silva", model.CategoryBowler, 40, 8),
			samplePlayer("Charith Asalanka", model.CategoryAllRounder, 150, 5),
			samplePlayer("Pathum Silva", model.CategoryBatsman, 210, 0),
		}
		if _, err := repo.CreateMany(ctx, seed); err != nil {
			t.Fatalf("seed: %v", err)
		}

		res, err := repo.List(ctx, model.PlayerFilter{Search: "silva", Sort: "total_runs", Desc: true}, repository.Page{Limit: 2})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 3 || len(res.Items) != 2 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		if res.Items[0].Name != "Dimuth Silva" || res.Items[1].Name != "Pathum Silva" {
			t.Fatalf("unexpected order: %s, %s", res.Items[0].Name, res.Items[1].Name)
		}

		res, err = repo.List(ctx, model.PlayerFilter{Category: model.CategoryBowler}, repository.Page{})
		if err != nil {
			t.Fatalf("list by category: %v", err)
		}
		if res.Total != 2 {
			t.Fatalf("expected 2 bowlers, got %d", res.Total)
		}

		// LIKE wildcards in search are literal
		res, err = repo.List(ctx, model.PlayerFilter{Search: "50%"}, repository.Page{})
		if err != nil {
			t.Fatalf("list wildcard: %v", err)
		}
		if res.Total != 1 || res.Items[0].Name != "Lahiru 50%" {
			t.Fatalf("expected literal match, got %+v", res.Items)
		}
	})

	t.Run("update_and_delete", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, samplePlayer("Old", model.CategoryBatsman, 10, 0))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		created.Name = "New"
		created.TotalRuns = 99
		updated, err := repo.Update(ctx, created)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Name != "New" || updated.TotalRuns != 99 || updated.UpdatedAt.Before(created.UpdatedAt) {
			t.Fatalf("update not applied: %+v", updated)
		}
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := repo.Delete(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
		if _, err := repo.Update(ctx, created); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on update of deleted row, got %v", err)
		}
	})

	t.Run("summary", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		empty, err := repo.Summary(ctx)
		if err != nil {
			t.Fatalf("summary empty: %v", err)
		}
		if empty.TotalPlayers != 0 || empty.HighestRunScorer != nil || empty.HighestWicketTaker != nil {
			t.Fatalf("unexpected empty summary: %+v", empty)
		}

		seed := []model.Player{
			samplePlayer("Runs", model.CategoryBatsman, 400, 0),
			samplePlayer("Wickets", model.CategoryBowler, 30, 15),
			samplePlayer("Both", model.CategoryAllRounder, 400, 15),
		}
		if _, err := repo.CreateMany(ctx, seed); err != nil {
			t.Fatalf("seed: %v", err)
		}
		s, err := repo.Summary(ctx)
		if err != nil {
			t.Fatalf("summary: %v", err)
		}
		if s.TotalPlayers != 3 || s.TotalRuns != 830 || s.TotalWickets != 30 {
			t.Fatalf("unexpected totals: %+v", s)
		}
		// ties resolve to the earliest player
		if s.HighestRunScorer == nil || s.HighestRunScorer.Name != "Runs" || s.HighestRunScorer.Value != 400 {
			t.Fatalf("unexpected run scorer: %+v", s.HighestRunScorer)
		}
		if s.HighestWicketTaker == nil || s.HighestWicketTaker.Name != "Wickets" {
			t.Fatalf("unexpected wicket taker: %+v", s.HighestWicketTaker)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, players, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := players.Create(ctx, samplePlayer("TxCommit", model.CategoryBatsman, 1, 0))
			if err != nil {
				return err
			}
			createdID = out.ID
			return nil
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := players.GetByID(ctx, createdID); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, players, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		errMarker := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := players.Create(ctx, samplePlayer("TxRollback", model.CategoryBatsman, 1, 0))
			if err != nil {
				return err
			}
			createdID = out.ID
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := players.GetByID(ctx, createdID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after rollback, got %v", err)
		}
	})

	t.Run("lock_for_update_inside_tx", func(t *testing.T) {
		tx, players, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := players.Create(ctx, samplePlayer("Locked", model.CategoryBatsman, 5, 0))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		err = tx.WithinTx(ctx, func(ctx context.Context) error {
			p, err := players.GetByIDForUpdate(ctx, created.ID)
			if err != nil {
				return err
			}
			p.TotalRuns = 50
			_, err = players.Update(ctx, p)
			return err
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		got, err := players.GetByID(ctx, created.ID)
		if err != nil || got.TotalRuns != 50 {
			t.Fatalf("expected committed update, got %+v err=%v", got, err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
