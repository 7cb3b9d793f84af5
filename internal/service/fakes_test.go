package service_test

import (
	"context"
	"errors"
	"sort"

	"github.com/maxviazov/fantasy-cricket-service/internal/model"
	"github.com/maxviazov/fantasy-cricket-service/internal/repository"
	"github.com/maxviazov/fantasy-cricket-service/internal/service"
)

type fakePlayerRepo struct {
	nextID       int64
	players      map[int64]model.Player
	createErr    error
	summaryCalls int
	lastFilter   model.PlayerFilter
	lastPage     repository.Page
	lockedIDs    []int64
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{nextID: 1, players: map[int64]model.Player{}}
}

func (f *fakePlayerRepo) Create(_ context.Context, p model.Player) (model.Player, error) {
	if f.createErr != nil {
		return model.Player{}, f.createErr
	}
	p.ID = f.nextID
	f.nextID++
	f.players[p.ID] = p
	return p, nil
}

func (f *fakePlayerRepo) CreateMany(ctx context.Context, ps []model.Player) ([]model.Player, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := make([]model.Player, 0, len(ps))
	for _, p := range ps {
		created, _ := f.Create(ctx, p)
		out = append(out, created)
	}
	return out, nil
}

func (f *fakePlayerRepo) GetByID(_ context.Context, id int64) (model.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return model.Player{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePlayerRepo) GetByIDForUpdate(ctx context.Context, id int64) (model.Player, error) {
	f.lockedIDs = append(f.lockedIDs, id)
	return f.GetByID(ctx, id)
}

func (f *fakePlayerRepo) GetByIDs(_ context.Context, ids []int64) ([]model.Player, error) {
	var out []model.Player
	for _, id := range ids {
		if p, ok := f.players[id]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePlayerRepo) List(_ context.Context, filter model.PlayerFilter, p repository.Page) (repository.PageResult[model.Player], error) {
	f.lastFilter = filter
	f.lastPage = p
	var res repository.PageResult[model.Player]
	for _, pl := range f.players {
		if filter.Category == "" || pl.Category == filter.Category {
			res.Items = append(res.Items, pl)
		}
	}
	res.Total = len(res.Items)
	return res, nil
}

func (f *fakePlayerRepo) Update(_ context.Context, p model.Player) (model.Player, error) {
	if _, ok := f.players[p.ID]; !ok {
		return model.Player{}, repository.ErrNotFound
	}
	f.players[p.ID] = p
	return p, nil
}

func (f *fakePlayerRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.players[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.players, id)
	return nil
}

func (f *fakePlayerRepo) Summary(context.Context) (model.TournamentSummary, error) {
	f.summaryCalls++
	var s model.TournamentSummary
	for _, p := range f.players {
		s.TotalPlayers++
		s.TotalRuns += int64(p.TotalRuns)
		s.TotalWickets += int64(p.Wickets)
	}
	return s, nil
}

var _ repository.PlayerRepository = (*fakePlayerRepo)(nil)

// fakeTx runs fn inline and records how often a transaction was requested.
type fakeTx struct{ calls int }

func (f *fakeTx) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	f.calls++
	return fn(ctx)
}

var _ repository.TxManager = (*fakeTx)(nil)

type fakeCache struct {
	value       *model.TournamentSummary
	getErr      error
	invalidated int
	sets        int
}

func (f *fakeCache) Get(context.Context) (model.TournamentSummary, bool, error) {
	if f.getErr != nil {
		return model.TournamentSummary{}, false, f.getErr
	}
	if f.value == nil {
		return model.TournamentSummary{}, false, nil
	}
	return *f.value, true, nil
}

func (f *fakeCache) Set(_ context.Context, s model.TournamentSummary) error {
	f.sets++
	f.value = &s
	return nil
}

func (f *fakeCache) Invalidate(context.Context) error {
	f.invalidated++
	f.value = nil
	return nil
}

var _ service.SummaryCache = (*fakeCache)(nil)

func serviceErrIsInvalid(err error) bool {
	return errors.Is(err, service.ErrInvalidInput)
}

func hasField(err error, field string) bool {
	for _, fe := range service.FieldErrors(err) {
		if fe.Field == field {
			return true
		}
	}
	return false
}
