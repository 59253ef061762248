// Package repair validates cached SRD spell data and normalizes the
// inconsistent shapes the upstream fetch has produced over time.
package repair

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
	"github.com/KirkDiggler/deck-forge/internal/errors"
)

var requiredFields = []string{"index", "name", "level", "school", "classes"}

// Result is the outcome for one element of the input
type Result struct {
	Position int
	Name     string
	Spell    *deck.Spell
	Err      error
}

// Output holds the surviving spells and the elements that were dropped
type Output struct {
	Spells  []deck.Spell
	Dropped []Result
}

// Config holds the dependencies for the repairer
type Config struct {
	Logger *slog.Logger
}

// Repairer runs validation and repair over raw spell data
type Repairer struct {
	logger *slog.Logger
}

// New creates a Repairer. A nil config uses the default logger.
func New(cfg *Config) *Repairer {
	logger := slog.Default()
	if cfg != nil && cfg.Logger != nil {
		logger = cfg.Logger
	}
	return &Repairer{logger: logger}
}

// ValidateAndRepair returns every element that could be normalized into a
// Spell, in input order. It never fails on a bad element: the element is
// logged and dropped. An empty result is logged and returned as-is; callers
// decide whether that is terminal.
func (r *Repairer) ValidateAndRepair(input RawSpellInput) *Output {
	out := &Output{}

	elems, err := elements(input, 0)
	if err != nil {
		r.logger.Warn("Could not unwrap spell data", "error", err)
		elems = nil
	}

	for i, elem := range elems {
		res := NormalizeElement(i, elem)
		if res.Err != nil {
			r.logger.Warn("Dropping invalid spell",
				"position", res.Position, "spell", res.Name, "error", res.Err)
			out.Dropped = append(out.Dropped, res)
			continue
		}
		out.Spells = append(out.Spells, *res.Spell)
	}

	if len(out.Spells) == 0 {
		r.logger.Warn("No valid spells after validation", "dropped", len(out.Dropped))
	}

	return out
}

// NormalizeElement turns one raw list element into a Spell
func NormalizeElement(position int, elem json.RawMessage) Result {
	res := Result{Position: position}

	record, err := decodeRecord(elem)
	if err != nil {
		res.Err = err
		return res
	}

	if name, ok := asString(record["name"]); ok {
		res.Name = name
	}

	var missing []string
	for _, field := range requiredFields {
		if isBlank(record[field]) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		res.Err = errors.MalformedRecordf("missing required fields: %s", strings.Join(missing, ", ")).
			WithMeta("missing", missing)
		return res
	}

	spell, err := normalize(record)
	if err != nil {
		res.Err = err
		return res
	}

	res.Spell = spell
	return res
}

func decodeRecord(elem json.RawMessage) (map[string]any, error) {
	trimmed := bytes.TrimSpace(elem)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeMalformedRecord, "element is not a valid string")
		}
		trimmed = bytes.TrimSpace([]byte(encoded))
	}

	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.MalformedRecord("element is not a spell object")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var record map[string]any
	if err := dec.Decode(&record); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeMalformedRecord, "element is not valid JSON")
	}
	return record, nil
}

func normalize(record map[string]any) (*deck.Spell, error) {
	level, err := asLevel(record["level"])
	if err != nil {
		return nil, err
	}

	index, _ := asString(record["index"])
	name, _ := asString(record["name"])

	school, ok := asString(record["school"])
	if !ok || school == "" {
		return nil, errors.MalformedRecordf("school %v is not a name", record["school"])
	}

	classes := asStrings(record["classes"], false)
	if len(classes) == 0 {
		return nil, errors.MalformedRecord("classes has no usable names")
	}

	return &deck.Spell{
		Index:       index,
		Name:        name,
		Level:       level,
		School:      school,
		Classes:     classes,
		Desc:        asStrings(record["desc"], false),
		Range:       stringOr(record["range"], deck.DefaultRange),
		Duration:    stringOr(record["duration"], deck.DefaultDuration),
		CastingTime: stringOr(record["casting_time"], deck.DefaultCastingTime),
		Components:  asStrings(record["components"], true),
	}, nil
}

func asLevel(v any) (int, error) {
	var level int
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			level = int(n)
			break
		}
		f, err := val.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, errors.MalformedRecordf("level %q is not an integer", val.String())
		}
		level = int(f)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, errors.MalformedRecordf("level %q is not an integer", val)
		}
		level = n
	default:
		return 0, errors.MalformedRecordf("level has unsupported type %T", v)
	}

	if level < 0 {
		return 0, errors.MalformedRecordf("level %d is negative", level)
	}
	return level, nil
}

// asString coerces scalars to a string and unwraps {"name": ...} references
func asString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), true
	case json.Number:
		return val.String(), true
	case bool:
		return strconv.FormatBool(val), true
	case map[string]any:
		return asString(val["name"])
	default:
		return "", false
	}
}

// asStrings coerces a list or a bare scalar into a list of strings.
// With splitCommas a bare string like "V, S, M" becomes three entries.
func asStrings(v any, splitCommas bool) []string {
	var items []any
	switch val := v.(type) {
	case nil:
		return []string{}
	case []any:
		items = val
	case string:
		if splitCommas {
			for _, part := range strings.Split(val, ",") {
				items = append(items, part)
			}
		} else {
			items = []any{val}
		}
	default:
		items = []any{val}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := asString(item); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func stringOr(v any, fallback string) string {
	if s, ok := asString(v); ok && s != "" {
		return s
	}
	return fallback
}

func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}

// String summarizes the output for log lines
func (o *Output) String() string {
	return fmt.Sprintf("%d valid, %d dropped", len(o.Spells), len(o.Dropped))
}
