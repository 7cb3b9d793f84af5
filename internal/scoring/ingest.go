package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/maxviazov/fantasy-cricket-service/internal/model"
)

// fieldKeys lists the accepted spellings of one input field, in lookup priority.
// Human-readable headers come from spreadsheets, camelCase from the admin UI and
// snake_case from this service's own JSON output.
type fieldKeys struct {
	human string
	camel string
	snake string
}

func (f fieldKeys) keys() []string {
	out := []string{f.human, f.camel}
	if f.snake != f.camel {
		out = append(out, f.snake)
	}
	return out
}

var (
	keyName          = fieldKeys{"Name", "name", "name"}
	keyUniversity    = fieldKeys{"University", "university", "university"}
	keyCategory      = fieldKeys{"Category", "category", "category"}
	keyTotalRuns     = fieldKeys{"Total Runs", "totalRuns", "total_runs"}
	keyBallsFaced    = fieldKeys{"Balls Faced", "ballsFaced", "balls_faced"}
	keyInningsPlayed = fieldKeys{"Innings Played", "inningsPlayed", "innings_played"}
	keyWickets       = fieldKeys{"Wickets", "wickets", "wickets"}
	keyOversBowled   = fieldKeys{"Overs Bowled", "oversBowled", "overs_bowled"}
	keyRunsConceded  = fieldKeys{"Runs Conceded", "runsConceded", "runs_conceded"}

	allFields = []fieldKeys{
		keyName, keyUniversity, keyCategory,
		keyTotalRuns, keyBallsFaced, keyInningsPlayed,
		keyWickets, keyOversBowled, keyRunsConceded,
	}
)

// IngestResult is the outcome of mapping and validating one loosely-shaped input record.
// A failed validation is a value, not an error: callers branch on Valid.
type IngestResult struct {
	Valid   bool
	Error   string
	Missing []string
	// Invalid lists numeric fields that parsed but cannot be stored: negative or beyond int64.
	Invalid []FieldIssue
	Player  model.Player
}

// FieldIssue names a rejected numeric field by its camelCase key.
type FieldIssue struct {
	Field   string
	Message string
}

const (
	msgNegative   = "must be >= 0"
	msgOutOfRange = "is out of range"
)

// Ingest maps raw input onto a Player, validates it and computes derived metrics.
//
// Name, university and category must be non-blank; every missing one is listed in Error.
// Unparseable or absent numbers become 0. Negative counters and numbers too large to store
// make the record invalid.
func Ingest(raw map[string]any) IngestResult {
	name := text(lookup(raw, keyName))
	university := text(lookup(raw, keyUniversity))
	category := text(lookup(raw, keyCategory))

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if university == "" {
		missing = append(missing, "university")
	}
	if category == "" {
		missing = append(missing, "category")
	}

	var issues []FieldIssue
	counter := func(f fieldKeys) int {
		n, ok := intOrZero(lookup(raw, f))
		issues = appendIssue(issues, f, ok, n < 0)
		return n
	}
	rec := model.PerformanceRecord{
		TotalRuns:     counter(keyTotalRuns),
		BallsFaced:    counter(keyBallsFaced),
		InningsPlayed: counter(keyInningsPlayed),
		Wickets:       counter(keyWickets),
	}
	overs, ok := floatOrZero(lookup(raw, keyOversBowled))
	issues = appendIssue(issues, keyOversBowled, ok, overs < 0)
	rec.OversBowled = overs
	rec.RunsConceded = counter(keyRunsConceded)

	if len(missing) > 0 || len(issues) > 0 {
		return IngestResult{Error: ingestError(missing, issues), Missing: missing, Invalid: issues}
	}
	return IngestResult{
		Valid: true,
		Player: model.Player{
			Name:              name,
			University:        university,
			Category:          NormalizeCategory(category),
			PerformanceRecord: rec,
			DerivedMetrics:    Compute(rec),
		},
	}
}

func appendIssue(issues []FieldIssue, f fieldKeys, inRange, negative bool) []FieldIssue {
	switch {
	case !inRange:
		return append(issues, FieldIssue{Field: f.camel, Message: msgOutOfRange})
	case negative:
		return append(issues, FieldIssue{Field: f.camel, Message: msgNegative})
	}
	return issues
}

// ingestError keeps the "Missing required fields: a, b" form and appends numeric problems after it.
func ingestError(missing []string, issues []FieldIssue) string {
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "Missing required fields: "+strings.Join(missing, ", "))
	}
	if len(issues) > 0 {
		bad := make([]string, 0, len(issues))
		for _, fi := range issues {
			bad = append(bad, fi.Field+" "+fi.Message)
		}
		parts = append(parts, "Invalid fields: "+strings.Join(bad, ", "))
	}
	return strings.Join(parts, "; ")
}

// Merge overlays a partial update on an existing player's raw fields.
// The result is in camelCase form and is meant to be passed back through Ingest, so the
// derived metrics are recomputed from the full current record rather than the delta.
// Within the patch the first truthy spelling of a field wins, as in Ingest; a falsy value
// applies only when no spelling of that field is truthy, so {"wickets": 0} still resets.
// The boolean reports whether the patch touched any known field.
func Merge(existing model.Player, patch map[string]any) (map[string]any, bool) {
	merged := map[string]any{
		keyName.camel:          existing.Name,
		keyUniversity.camel:    existing.University,
		keyCategory.camel:      string(existing.Category),
		keyTotalRuns.camel:     existing.TotalRuns,
		keyBallsFaced.camel:    existing.BallsFaced,
		keyInningsPlayed.camel: existing.InningsPlayed,
		keyWickets.camel:       existing.Wickets,
		keyOversBowled.camel:   existing.OversBowled,
		keyRunsConceded.camel:  existing.RunsConceded,
	}
	touched := false
	for _, f := range allFields {
		if v := lookup(patch, f); v != nil {
			merged[f.camel] = v
			touched = true
			continue
		}
		for _, k := range f.keys() {
			if v, ok := patch[k]; ok {
				merged[f.camel] = v
				touched = true
				break
			}
		}
	}
	return merged, touched
}

// lookup returns the first truthy value among the field's accepted keys.
func lookup(raw map[string]any, f fieldKeys) any {
	for _, k := range f.keys() {
		if v := raw[k]; truthy(v) {
			return v
		}
	}
	return nil
}

// truthy treats nil, false, numeric zero, NaN and the empty string as absent.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || (f != 0 && !math.IsNaN(f))
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0 && !math.IsNaN(float64(t))
	case int:
		return t != 0
	case int64:
		return t != 0
	case int32:
		return t != 0
	default:
		return true
	}
}

// text renders scalar input as a trimmed string; anything else is treated as blank.
func text(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64, float32, int, int64, int32:
		return fmt.Sprint(t)
	default:
		return ""
	}
}

var (
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// intOrZero reads the leading integer of v, truncating any fraction.
// ok is false when the number parses but does not fit in an int.
func intOrZero(v any) (n int, ok bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case int32:
		return int(t), true
	case float64:
		return truncate(t)
	case float32:
		return truncate(float64(t))
	case json.Number:
		// a JSON number is complete text, so exponent forms like 1e3 are whole values
		if i, err := t.Int64(); err == nil {
			return int(i), true
		}
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return truncate(f)
	case string:
		return parseLeadingInt(t)
	default:
		return 0, true
	}
}

// floatOrZero reads the leading decimal of v. NaN becomes 0; ok is false for ±Inf and overflow.
func floatOrZero(v any) (f float64, ok bool) {
	switch t := v.(type) {
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case int32:
		f = float64(t)
	case float64:
		f = t
	case float32:
		f = float64(t)
	case json.Number:
		var err error
		if f, err = t.Float64(); err != nil {
			return 0, false
		}
	case string:
		return parseLeadingFloat(t)
	}
	if math.IsNaN(f) {
		return 0, true
	}
	if math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func truncate(f float64) (int, bool) {
	if math.IsNaN(f) {
		return 0, true
	}
	if math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int(f), true
}

func parseLeadingInt(s string) (int, bool) {
	m := leadingInt.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, true
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseLeadingFloat(s string) (float64, bool) {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
