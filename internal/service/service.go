// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
// All numeric derivation lives in the scoring package.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/fantasy-cricket-service/internal/model"
	"github.com/maxviazov/fantasy-cricket-service/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields  []FieldError
	message string
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }
func (e *invalidInputError) Message() string      { return e.message }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// newInvalidInputMsg is newInvalidInput with a human-readable summary for the client.
func newInvalidInputMsg(msg string, fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe, message: msg}
}

// NewInvalidInputError lets transport code report malformed requests in the same shape.
func NewInvalidInputError(fe []FieldError) error {
	return newInvalidInput(fe)
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// InvalidInputMessage returns the summary attached to an aggregated validation error, if any.
func InvalidInputMessage(err error) string {
	type msgIface interface{ Message() string }
	var v msgIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Message()
	}
	return ""
}

// SummaryCache stores the tournament summary between player writes.
// Get reports false on a miss. Implementations live in the cache package.
type SummaryCache interface {
	Get(ctx context.Context) (model.TournamentSummary, bool, error)
	Set(ctx context.Context, s model.TournamentSummary) error
	Invalidate(ctx context.Context) error
}

// PlayerService defines catalog use cases. Raw input is loosely shaped and goes through scoring.Ingest.
type PlayerService interface {
	CreatePlayer(ctx context.Context, raw map[string]any) (model.Player, error)
	ImportPlayers(ctx context.Context, rows []map[string]any) (model.ImportReport, error)
	GetPlayer(ctx context.Context, id int64) (model.Player, error)
	ListPlayers(ctx context.Context, f PlayerQuery, page repository.Page) (repository.PageResult[model.Player], error)
	UpdatePlayer(ctx context.Context, id int64, patch map[string]any) (model.Player, error)
	DeletePlayer(ctx context.Context, id int64) error
}

// PlayerQuery is the unvalidated listing request as received from a client.
type PlayerQuery struct {
	Search   string
	Category string
	Sort     string
	Order    string
}

// TournamentService defines tournament-wide aggregates.
type TournamentService interface {
	GetSummary(ctx context.Context) (model.TournamentSummary, error)
}

// SquadService defines squad selection checks.
type SquadService interface {
	QuoteSquad(ctx context.Context, playerIDs []int64) (model.SquadQuote, error)
}
