// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "time"

// Category is the playing role of a cricketer.
type Category string

const (
	CategoryBatsman    Category = "Batsman"
	CategoryBowler     Category = "Bowler"
	CategoryAllRounder Category = "All-rounder"
)

// Categories lists every accepted category in display order.
var Categories = []Category{CategoryBatsman, CategoryBowler, CategoryAllRounder}

// PerformanceRecord holds the raw counting statistics an admin supplies for a player.
type PerformanceRecord struct {
	TotalRuns     int     `json:"total_runs"`
	BallsFaced    int     `json:"balls_faced"`
	InningsPlayed int     `json:"innings_played"`
	Wickets       int     `json:"wickets"`
	OversBowled   float64 `json:"overs_bowled"`
	RunsConceded  int     `json:"runs_conceded"`
}

// DerivedMetrics is computed from a PerformanceRecord by the scoring engine and persisted alongside it.
// Consumers read these fields as-is and never recompute them.
type DerivedMetrics struct {
	BattingStrikeRate float64 `json:"batting_strike_rate"`
	BattingAverage    float64 `json:"batting_average"`
	BowlingStrikeRate float64 `json:"bowling_strike_rate"`
	EconomyRate       float64 `json:"economy_rate"`
	PlayerPoints      float64 `json:"player_points"`
	PlayerValue       int64   `json:"player_value"`
}

// Player is a catalog entry: identity, raw stats and the derived metrics computed from them.
type Player struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	University string   `json:"university"`
	Category   Category `json:"category"`
	PerformanceRecord
	DerivedMetrics
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlayerFilter narrows and orders player listings.
// Sort holds a column name already checked against the service whitelist.
type PlayerFilter struct {
	Search   string
	Category Category
	Sort     string
	Desc     bool
}

// PlayerHighlight names a standout player in a tournament summary.
type PlayerHighlight struct {
	PlayerID   int64  `json:"player_id"`
	Name       string `json:"name"`
	University string `json:"university"`
	Value      int    `json:"value"`
}

// TournamentSummary aggregates raw stats across the whole player catalog.
// Highlights are nil when no player has a positive count.
type TournamentSummary struct {
	TotalPlayers       int              `json:"total_players"`
	TotalRuns          int64            `json:"total_runs"`
	TotalWickets       int64            `json:"total_wickets"`
	HighestRunScorer   *PlayerHighlight `json:"highest_run_scorer"`
	HighestWicketTaker *PlayerHighlight `json:"highest_wicket_taker"`
}

// CategoryCount is the squad composition by playing role.
type CategoryCount struct {
	Batsmen     int `json:"batsmen"`
	Bowlers     int `json:"bowlers"`
	AllRounders int `json:"all_rounders"`
}

// SquadQuote is a read-only cost check of a prospective squad against the budget.
type SquadQuote struct {
	PlayerIDs    []int64       `json:"player_ids"`
	PlayerCount  int           `json:"player_count"`
	TotalValue   int64         `json:"total_value"`
	TotalPoints  float64       `json:"total_points"`
	Budget       int64         `json:"budget"`
	Remaining    int64         `json:"remaining"`
	WithinBudget bool          `json:"within_budget"`
	Composition  CategoryCount `json:"composition"`
}

// RowError reports one rejected row of a bulk import.
type RowError struct {
	Index int            `json:"index"`
	Data  map[string]any `json:"data"`
	Error string         `json:"error"`
}

// ImportReport is the outcome of a bulk import: persisted players plus rejected rows.
type ImportReport struct {
	Created      []Player   `json:"created"`
	CreatedCount int        `json:"created_count"`
	InvalidCount int        `json:"invalid_count"`
	Invalid      []RowError `json:"invalid,omitempty"`
}
