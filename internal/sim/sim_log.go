package sim

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Event categories and keys recorded by the simulation.
const (
	CatCombat = "combat"
	CatMove   = "move"
	CatPatrol = "patrol"
	CatState  = "state"

	KeyFire     = "fire"
	KeyHit      = "hit"
	KeyAbsorb   = "absorb"
	KeyRollback = "rollback"
	KeyTurn     = "turn"
	KeySighted  = "sighted"
	KeyDeath    = "death"
	KeyOutcome  = "outcome"
	KeyPosition = "position"
)

// SimLogEntry is one recorded simulation event.
type SimLogEntry struct {
	Tick     int
	Actor    string // label e.g. "P0", "E2", or "--" for world events
	Group    string
	Category string
	Key      string
	Value    string
	NumVal   float64
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] E1   combat    hit              P0/shot2 -> E1
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects structured events for tests, the headless report and the
// in-game combat panel. Every entry is also written to the logger at debug.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
	logger  zerolog.Logger
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position entries
// are recorded too.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose, logger: zerolog.Nop()}
}

// SetLogger mirrors future entries to l.
func (sl *SimLog) SetLogger(l zerolog.Logger) {
	sl.logger = l
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, actor, group, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Actor:    actor,
		Group:    group,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
	sl.logger.Debug().
		Int("tick", tick).
		Str("actor", actor).
		Str("category", category).
		Str("key", key).
		Float64("num", numVal).
		Msg(value)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Len is the number of recorded entries.
func (sl *SimLog) Len() int {
	return len(sl.entries)
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterActor returns entries for a specific actor label.
func (sl *SimLog) FilterActor(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Actor == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the world state.
func (sl *SimLog) Summary(w *World) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", w.Tick())

	p := w.Player()
	fmt.Fprintf(&sb, "Player: hp=%d dead=%t pos=(%.1f,%.1f)\n",
		p.Health, p.Dead(), p.Position.X(), p.Position.Z())

	alive := 0
	for _, e := range w.Enemies() {
		if !e.Dead() {
			alive++
		}
	}
	fmt.Fprintf(&sb, "Enemies alive: %d/%d\n", alive, len(w.Enemies()))
	fmt.Fprintf(&sb, "Shots: fired=%d hits=%d absorbed=%d\n",
		sl.CountCategory(CatCombat, KeyFire),
		sl.CountCategory(CatCombat, KeyHit),
		sl.CountCategory(CatCombat, KeyAbsorb))
	fmt.Fprintf(&sb, "Outcome: %s\n", w.Outcome())
	return sb.String()
}

// recorder lets a unit write to the world's SimLog without holding the world.
type recorder struct {
	log  *SimLog
	tick *int
}

func (r recorder) add(a *Actor, category, key, value string, num float64) {
	if r.log == nil {
		return
	}
	tick := 0
	if r.tick != nil {
		tick = *r.tick
	}
	r.log.Add(tick, a.Label, a.Group().String(), category, key, value, num)
}

func (r recorder) addVerbose(a *Actor, category, key, value string, num float64) {
	if r.log == nil || !r.log.verbose {
		return
	}
	r.add(a, category, key, value, num)
}
