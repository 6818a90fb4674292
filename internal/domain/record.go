package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Region is an island group.
type Region string

const (
	Luzon    Region = "Luzon"
	Visayas  Region = "Visayas"
	Mindanao Region = "Mindanao"
	// Other holds vague phrases ("rest of Luzon") that name no specific place.
	Other Region = "Other"
)

// Regions lists every island group in canonical order.
var Regions = []Region{Luzon, Visayas, Mindanao, Other}

// ParseRegion resolves a case-insensitive island group name.
func ParseRegion(s string) (Region, bool) {
	s = strings.TrimSpace(s)
	for _, r := range Regions {
		if strings.EqualFold(s, string(r)) {
			return r, true
		}
	}
	return "", false
}

// IslandGroups holds one optional value per island group. All four keys are
// always serialized; a nil pointer means "no data".
type IslandGroups struct {
	Luzon    *string `json:"Luzon"`
	Visayas  *string `json:"Visayas"`
	Mindanao *string `json:"Mindanao"`
	Other    *string `json:"Other"`
}

func (g *IslandGroups) slot(r Region) **string {
	switch r {
	case Luzon:
		return &g.Luzon
	case Visayas:
		return &g.Visayas
	case Mindanao:
		return &g.Mindanao
	case Other:
		return &g.Other
	}
	return nil
}

// Get returns the value for r, or nil.
func (g IslandGroups) Get(r Region) *string {
	if p := g.slot(r); p != nil {
		return *p
	}
	return nil
}

// SetIfEmpty stores v under r unless a value is already present. Empty
// strings are never stored. It reports whether the value was stored.
func (g *IslandGroups) SetIfEmpty(r Region, v string) bool {
	p := g.slot(r)
	if p == nil || *p != nil || v == "" {
		return false
	}
	*p = &v
	return true
}

// IsEmpty reports whether no island group has a value.
func (g IslandGroups) IsEmpty() bool {
	return g.Luzon == nil && g.Visayas == nil && g.Mindanao == nil && g.Other == nil
}

// Map renders the groups as a generic map with all four keys present.
func (g IslandGroups) Map() map[string]any {
	m := make(map[string]any, len(Regions))
	for _, r := range Regions {
		if v := g.Get(r); v != nil {
			m[string(r)] = *v
		} else {
			m[string(r)] = nil
		}
	}
	return m
}

// Field is an extracted scalar with its confidence in [0, 1].
type Field struct {
	Value      *string `json:"value"`
	Confidence float64 `json:"confidence"`
}

// NewField builds a populated field.
func NewField(value string, confidence float64) Field {
	return Field{Value: &value, Confidence: confidence}
}

// String returns the value or "".
func (f Field) String() string {
	if f.Value == nil {
		return ""
	}
	return *f.Value
}

// Map renders the field as {"value", "confidence"}.
func (f Field) Map() map[string]any {
	var v any
	if f.Value != nil {
		v = *f.Value
	}
	return map[string]any{"value": v, "confidence": f.Confidence}
}

// Signal and rainfall level counts.
const (
	SignalLevels   = 5
	RainfallLevels = 3
)

// SignalTable holds wind signal levels 1..5 at indexes 0..4.
type SignalTable [SignalLevels]IslandGroups

// Set stores v for (level, region) unless already present. Out-of-range
// levels are ignored.
func (t *SignalTable) Set(level int, r Region, v string) bool {
	if level < 1 || level > SignalLevels {
		return false
	}
	return t[level-1].SetIfEmpty(r, v)
}

// Level returns the groups for a 1-based level.
func (t SignalTable) Level(level int) IslandGroups {
	if level < 1 || level > SignalLevels {
		return IslandGroups{}
	}
	return t[level-1]
}

// IsEmpty reports whether no level has any value.
func (t SignalTable) IsEmpty() bool {
	for _, g := range t {
		if !g.IsEmpty() {
			return false
		}
	}
	return true
}

// RainfallLevel is one rainfall warning level. Primary is the island group
// with the most matched places; it is empty when nothing matched.
type RainfallLevel struct {
	Groups  IslandGroups
	Primary Region
}

// RainfallTable holds rainfall warning levels 1..3 at indexes 0..2.
type RainfallTable [RainfallLevels]RainfallLevel

// Level returns the groups for a 1-based level.
func (t RainfallTable) Level(level int) IslandGroups {
	if level < 1 || level > RainfallLevels {
		return IslandGroups{}
	}
	return t[level-1].Groups
}

// IsEmpty reports whether no level has any value.
func (t RainfallTable) IsEmpty() bool {
	for _, l := range t {
		if !l.Groups.IsEmpty() {
			return false
		}
	}
	return true
}

// Record is everything extracted from one bulletin.
type Record struct {
	DocumentID      string
	Source          string
	Location        Field
	Movement        Field
	Windspeed       Field
	UpdatedDatetime Field
	Signals         SignalTable
	Rainfall        RainfallTable
	ProcessedAt     time.Time
}

// Record keys.
const (
	KeyLocation        = "typhoon_location_text"
	KeyMovement        = "typhoon_movement"
	KeyWindspeed       = "typhoon_windspeed"
	KeyUpdatedDatetime = "updated_datetime"
	keySignalPrefix    = "signal_warning_tags"
	keyRainfallPrefix  = "rainfall_warning_tags"
)

// SignalKey returns the record key for a wind signal level, e.g. signal_warning_tags3.
func SignalKey(level int) string { return keySignalPrefix + strconv.Itoa(level) }

// RainfallKey returns the record key for a rainfall level, e.g. rainfall_warning_tags1.
func RainfallKey(level int) string { return keyRainfallPrefix + strconv.Itoa(level) }

// Map renders the record in its external shape. Every key is present.
func (r Record) Map() map[string]any {
	m := map[string]any{
		KeyLocation:        r.Location.Map(),
		KeyMovement:        r.Movement.Map(),
		KeyWindspeed:       r.Windspeed.Map(),
		KeyUpdatedDatetime: r.UpdatedDatetime.Map(),
	}
	for level := 1; level <= SignalLevels; level++ {
		m[SignalKey(level)] = r.Signals.Level(level).Map()
	}
	for level := 1; level <= RainfallLevels; level++ {
		m[RainfallKey(level)] = r.Rainfall.Level(level).Map()
	}
	return m
}

// MarshalJSON encodes the external shape produced by Map.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

// StripConfidence removes every "confidence" key from a tree of
// map[string]any and []any values. A map left holding only "value" after
// its confidence was removed collapses to that value. Other values pass
// through unchanged.
func StripConfidence(v any) any {
	switch t := v.(type) {
	case map[string]any:
		_, hadConfidence := t["confidence"]
		out := make(map[string]any, len(t))
		for k, child := range t {
			if k == "confidence" {
				continue
			}
			out[k] = StripConfidence(child)
		}
		if value, ok := out["value"]; ok && hadConfidence && len(out) == 1 {
			return value
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = StripConfidence(child)
		}
		return out
	default:
		return v
	}
}
