package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Tank-Skirmish/internal/config"
	"github.com/Garsondee/Tank-Skirmish/internal/logging"
	"github.com/Garsondee/Tank-Skirmish/internal/sim"
)

type runStats struct {
	runIndex int
	seed     int64

	outcome     sim.Outcome
	decidedTick int

	firstSightTick int
	firstHitTick   int
	firstDeathTick int
	lastHitTick    int

	shotsFired   int
	hits         int
	absorbed     int
	rollbacks    int
	patrolTurns  int
	playerHealth int
	enemiesAlive int
	enemiesTotal int

	deaths map[string]struct{}

	// trace holds the log of the last traceWindow ticks when -trace is set.
	trace string
}

// traceWindow is how many ticks of log -trace prints before the run ends.
const traceWindow = 60

// runOptions carries the per-run flags into runScenario.
type runOptions struct {
	cfg   sim.Config
	ticks int
	dt    float64
	trace bool
	pilot sim.Pilot
}

// scenarios maps a scenario name to the player pilot it runs.
var scenarios = map[string]sim.Pilot{
	"hunter": sim.HunterPilot,
	"sweep":  sim.TurretSweepPilot,
	"idle":   sim.IdlePilot,
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string
	var configDir string
	var copyOut bool
	var verbose bool
	var dt float64
	var trace bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "hunter", "scenario name ("+scenarioNames()+")")
	flag.StringVar(&configDir, "config", ".", "directory containing "+config.FileName)
	flag.BoolVar(&copyOut, "copy", false, "also copy the report to the clipboard")
	flag.BoolVar(&verbose, "v", false, "log every sim event at debug")
	flag.Float64Var(&dt, "dt", 1.0/60, "seconds simulated per tick")
	flag.BoolVar(&trace, "trace", false, "record per-tick positions and print the final ticks of each run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if dt <= 0 {
		fmt.Println("error: -dt must be > 0")
		return
	}
	pilot, ok := scenarios[scenario]
	if !ok {
		fmt.Printf("error: unsupported scenario %q (supported: %s)\n", scenario, scenarioNames())
		return
	}
	if err := config.Load(configDir); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	level := config.GetString("logLevel")
	if verbose {
		level = "debug"
	}
	logger := logging.New(os.Stderr, level)

	var out strings.Builder
	w := io.Writer(&out)

	fmt.Fprintf(w, "=== Headless Skirmish Report ===\n")
	fmt.Fprintf(w, "scenario=%s runs=%d ticks=%d dt=%.4f seed_base=%d seed_step=%d\n\n", scenario, runs, ticks, dt, seedBase, seedStep)

	opts := runOptions{cfg: config.Sim(), ticks: ticks, dt: dt, trace: trace, pilot: pilot}

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runScenario(i+1, seed, opts, logger)
		all = append(all, stats)
		printRun(w, stats)
	}
	printAggregate(w, all)

	fmt.Print(out.String())
	if copyOut {
		if err := clipboard.WriteAll(out.String()); err != nil {
			logger.Warn().Err(err).Msg("clipboard copy failed")
		} else {
			logger.Info().Int("bytes", out.Len()).Msg("report copied to clipboard")
		}
	}
}

func scenarioNames() string {
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func runScenario(runIndex int, seed int64, opts runOptions, logger zerolog.Logger) runStats {
	ts := sim.NewTestSim(
		sim.WithConfig(func(c *sim.Config) { *c = opts.cfg }),
		sim.WithSeed(seed),
		sim.WithPilot(opts.pilot),
		sim.WithTimestep(opts.dt),
		sim.WithVerbose(opts.trace),
	)
	ts.SimLog.SetLogger(logger.With().Int("run", runIndex).Logger())
	decided := ts.RunUntil(func(ts *sim.TestSim) bool {
		return ts.World.Outcome() != sim.OutcomeOngoing
	}, opts.ticks)

	rs := collectStats(ts.SimLog.Entries())
	rs.runIndex = runIndex
	rs.seed = seed
	rs.outcome = ts.World.Outcome()
	rs.decidedTick = decided
	if last, ok := ts.SimLog.LastOf(sim.CatCombat, sim.KeyHit); ok {
		rs.lastHitTick = last.Tick
	}
	if opts.trace {
		end := ts.CurrentTick()
		rs.trace = ts.SimLog.FormatRange(end-traceWindow+1, end)
	}
	rs.playerHealth = ts.World.Player().Health
	rs.enemiesTotal = len(ts.World.Enemies())
	for _, e := range ts.World.Enemies() {
		if !e.Dead() {
			rs.enemiesAlive++
		}
	}
	return rs
}

// collectStats tallies the event log of one run.
func collectStats(entries []sim.SimLogEntry) runStats {
	rs := runStats{
		firstSightTick: firstTick(entries, sim.CatPatrol, sim.KeySighted, ""),
		firstHitTick:   firstTick(entries, sim.CatCombat, sim.KeyHit, ""),
		firstDeathTick: firstTick(entries, sim.CatState, sim.KeyDeath, ""),
		lastHitTick:    -1,
		deaths:         map[string]struct{}{},
	}
	for _, e := range entries {
		switch e.Category {
		case sim.CatCombat:
			switch e.Key {
			case sim.KeyFire:
				rs.shotsFired++
			case sim.KeyHit:
				rs.hits++
			case sim.KeyAbsorb:
				rs.absorbed++
			}
		case sim.CatMove:
			if e.Key == sim.KeyRollback {
				rs.rollbacks++
			}
		case sim.CatPatrol:
			if e.Key == sim.KeyTurn {
				rs.patrolTurns++
			}
		case sim.CatState:
			if e.Key == sim.KeyDeath {
				rs.deaths[e.Actor] = struct{}{}
			}
		}
	}
	return rs
}

func firstTick(entries []sim.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(w, "outcome=%s decided_tick=%d player_hp=%d enemies_alive=%d/%d\n",
		rs.outcome, rs.decidedTick, rs.playerHealth, rs.enemiesAlive, rs.enemiesTotal)
	fmt.Fprintf(w, "phase_markers: first_sighting=%d first_hit=%d last_hit=%d first_death=%d\n",
		rs.firstSightTick, rs.firstHitTick, rs.lastHitTick, rs.firstDeathTick)
	fmt.Fprintf(w, "event_totals: fired=%d hits=%d absorbed=%d rollbacks=%d patrol_turns=%d accuracy=%s\n",
		rs.shotsFired, rs.hits, rs.absorbed, rs.rollbacks, rs.patrolTurns, accuracyString(rs.hits, rs.shotsFired))
	fmt.Fprintf(w, "destroyed: %s\n", joinSet(rs.deaths))
	if rs.trace != "" {
		fmt.Fprintf(w, "trace (last %d ticks):\n%s", traceWindow, rs.trace)
	}
	fmt.Fprintln(w)
}

func printAggregate(w io.Writer, all []runStats) {
	wins, losses, open := outcomeCounts(all)
	totalFired, totalHits, totalAbsorbed, totalRollbacks := 0, 0, 0, 0
	decidedTicks := make([]int, 0, len(all))
	hitTicks := make([]int, 0, len(all))
	destroyed := map[string]int{}
	for _, rs := range all {
		totalFired += rs.shotsFired
		totalHits += rs.hits
		totalAbsorbed += rs.absorbed
		totalRollbacks += rs.rollbacks
		if rs.outcome != sim.OutcomeOngoing {
			decidedTicks = append(decidedTicks, rs.decidedTick)
		}
		if rs.firstHitTick >= 0 {
			hitTicks = append(hitTicks, rs.firstHitTick)
		}
		for label := range rs.deaths {
			destroyed[label]++
		}
	}

	fmt.Fprintln(w, "=== Aggregate ===")
	fmt.Fprintf(w, "runs=%d won=%d lost=%d undecided=%d\n", len(all), wins, losses, open)
	fmt.Fprintf(w, "avg_events_per_run: fired=%.1f hits=%.1f absorbed=%.1f rollbacks=%.1f\n",
		avg(totalFired, len(all)), avg(totalHits, len(all)), avg(totalAbsorbed, len(all)), avg(totalRollbacks, len(all)))
	fmt.Fprintf(w, "overall_accuracy=%s\n", accuracyString(totalHits, totalFired))
	fmt.Fprintf(w, "phase_marker_avg_ticks: decided=%s first_hit=%s\n", avgTickString(decidedTicks), avgTickString(hitTicks))

	labels := make([]string, 0, len(destroyed))
	for l := range destroyed {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, l := range labels {
		fmt.Fprintf(w, "  %s destroyed in %d/%d runs\n", l, destroyed[l], len(all))
	}
}

func outcomeCounts(all []runStats) (won, lost, undecided int) {
	for _, rs := range all {
		switch rs.outcome {
		case sim.OutcomeWon:
			won++
		case sim.OutcomeLost:
			lost++
		default:
			undecided++
		}
	}
	return won, lost, undecided
}

func accuracyString(hits, fired int) string {
	if fired == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%%", float64(hits)/float64(fired)*100)
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinSet(set map[string]struct{}) string {
	if len(set) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}
