package handler_test

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/fantasy-cricket-service/internal/handler"
	"github.com/maxviazov/fantasy-cricket-service/internal/model"
	"github.com/maxviazov/fantasy-cricket-service/internal/repository"
	"github.com/maxviazov/fantasy-cricket-service/internal/service"
)

// stubPinger implements handler.Pinger for health endpoints.
type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

// fakeInvalid replicates aggregated validation error semantics.
type fakeInvalid struct{ fe []service.FieldError }

func (f *fakeInvalid) Error() string                { return service.ErrInvalidInput.Error() }
func (f *fakeInvalid) Unwrap() error                { return service.ErrInvalidInput }
func (f *fakeInvalid) Fields() []service.FieldError { return f.fe }

// stubPlayerService records what the handler passed and returns canned results.
type stubPlayerService struct {
	err error

	created    model.Player
	gotRaw     map[string]any
	report     model.ImportReport
	gotRows    []map[string]any
	list       repository.PageResult[model.Player]
	gotQuery   service.PlayerQuery
	gotPage    repository.Page
	gotID      int64
	gotPatch   map[string]any
	deletedIDs []int64
}

func (s *stubPlayerService) CreatePlayer(_ context.Context, raw map[string]any) (model.Player, error) {
	s.gotRaw = raw
	return s.created, s.err
}

func (s *stubPlayerService) ImportPlayers(_ context.Context, rows []map[string]any) (model.ImportReport, error) {
	s.gotRows = rows
	return s.report, s.err
}

func (s *stubPlayerService) GetPlayer(_ context.Context, id int64) (model.Player, error) {
	s.gotID = id
	return s.created, s.err
}

func (s *stubPlayerService) ListPlayers(_ context.Context, q service.PlayerQuery, p repository.Page) (repository.PageResult[model.Player], error) {
	s.gotQuery, s.gotPage = q, p
	return s.list, s.err
}

func (s *stubPlayerService) UpdatePlayer(_ context.Context, id int64, patch map[string]any) (model.Player, error) {
	s.gotID, s.gotPatch = id, patch
	return s.created, s.err
}

func (s *stubPlayerService) DeletePlayer(_ context.Context, id int64) error {
	s.deletedIDs = append(s.deletedIDs, id)
	return s.err
}

type stubTournamentService struct {
	summary model.TournamentSummary
	err     error
}

func (s *stubTournamentService) GetSummary(context.Context) (model.TournamentSummary, error) {
	return s.summary, s.err
}

type stubSquadService struct {
	quote  model.SquadQuote
	gotIDs []int64
	err    error
}

func (s *stubSquadService) QuoteSquad(_ context.Context, ids []int64) (model.SquadQuote, error) {
	s.gotIDs = ids
	return s.quote, s.err
}

type deps struct {
	pinger     handler.Pinger
	players    *stubPlayerService
	tournament *stubTournamentService
	squad      *stubSquadService
}

func newRouter(d deps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if d.pinger == nil {
		d.pinger = stubPinger{}
	}
	if d.players == nil {
		d.players = &stubPlayerService{}
	}
	if d.tournament == nil {
		d.tournament = &stubTournamentService{}
	}
	if d.squad == nil {
		d.squad = &stubSquadService{}
	}
	r := gin.New()
	handler.Register(r, d.pinger, d.players, d.tournament, d.squad)
	return r
}
