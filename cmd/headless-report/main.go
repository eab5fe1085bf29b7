package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Garsondee/Drone-Harvest/internal/config"
	"github.com/Garsondee/Drone-Harvest/internal/game"
	"github.com/Garsondee/Drone-Harvest/internal/logging"
)

type runStats struct {
	runIndex int
	seed     int64

	firstSplitTick     int
	firstHarvesterLoss int
	firstHitTick       int
	ticksRun           int

	spawned        int
	expired        int
	culled         int
	destroyed      int
	splits         int
	children       int
	harvestersLost int
	deployed       int
	peakZones      int
	level          int
	energy         float64
	byType         map[string]int

	hitTrace string // sim log leading up to the drone hit
}

// hitTraceTicks is how far back the verbose hit trace reaches.
const hitTraceTicks = 120

var scenarios = map[string]func(tick int) game.Input{
	// idle keeps the drone parked behind its harvester screen.
	"idle": func(int) game.Input { return game.Input{} },
	// weave sweeps the drone up and down every two seconds.
	"weave": func(tick int) game.Input {
		if (tick/120)%2 == 0 {
			return game.Input{MoveY: -1}
		}
		return game.Input{MoveY: 1}
	},
	// harvest weaves and tries to deploy a harvester every five seconds.
	"harvest": func(tick int) game.Input {
		in := game.Input{MoveY: 1}
		if (tick/120)%2 == 0 {
			in.MoveY = -1
		}
		in.Deploy = tick%300 == 0
		return in
	},
}

type options struct {
	runs       int
	ticks      int
	seedBase   int64
	seedStep   int64
	scenario   string
	configPath string
	copy       bool
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	root := &cobra.Command{
		Use:          "headless-report",
		Short:        "Run headless corruption sessions and print a balance report",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.OutOrStdout(), opts)
		},
	}
	f := root.Flags()
	f.IntVar(&opts.runs, "runs", 5, "number of headless runs")
	f.IntVar(&opts.ticks, "ticks", 60*60*3, "ticks per run (60 per second)")
	f.Int64Var(&opts.seedBase, "seed-base", 42, "base RNG seed for run 1")
	f.Int64Var(&opts.seedStep, "seed-step", 1, "seed increment between runs")
	f.StringVar(&opts.scenario, "scenario", "harvest", "drone script: "+strings.Join(scenarioNames(), ", "))
	f.StringVar(&opts.configPath, "config", "", "YAML config overlaying the defaults")
	f.BoolVar(&opts.copy, "copy", false, "copy the aggregate report to the clipboard")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log corruption events to stderr")

	root.AddCommand(newConfigCmd())
	return root
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the default configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Default().Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func runReport(w io.Writer, opts options) error {
	if opts.runs <= 0 {
		return fmt.Errorf("--runs must be > 0")
	}
	if opts.ticks <= 0 {
		return fmt.Errorf("--ticks must be > 0")
	}
	script, ok := scenarios[opts.scenario]
	if !ok {
		return fmt.Errorf("unsupported scenario %q (supported: %s)", opts.scenario, strings.Join(scenarioNames(), ", "))
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	log := zap.NewNop()
	if opts.verbose {
		lc := cfg.Logging
		lc.Level = "debug"
		lc.OutputPaths = []string{"stderr"}
		if log, err = logging.New(lc); err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
	}

	fmt.Fprintf(w, "=== Headless Corruption Report ===\n")
	fmt.Fprintf(w, "scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d field=%.0fx%.0f\n\n",
		opts.scenario, opts.runs, opts.ticks, opts.seedBase, opts.seedStep, cfg.Field.Width, cfg.Field.Height)

	all := make([]runStats, 0, opts.runs)
	for i := 0; i < opts.runs; i++ {
		seed := opts.seedBase + int64(i)*opts.seedStep
		rs, err := runScenario(cfg, log, script, i+1, seed, opts.ticks)
		if err != nil {
			return err
		}
		all = append(all, rs)
		printRun(w, rs)
		if opts.verbose && rs.hitTrace != "" {
			fmt.Fprintf(w, "lead-up to drone hit:\n%s\n", rs.hitTrace)
		}
	}

	var agg bytes.Buffer
	printAggregate(&agg, all)
	if _, err := w.Write(agg.Bytes()); err != nil {
		return err
	}
	if opts.copy {
		if err := clipboard.WriteAll(agg.String()); err != nil {
			return fmt.Errorf("copy report: %w", err)
		}
		fmt.Fprintln(w, "(aggregate copied to clipboard)")
	}
	return nil
}

func runScenario(cfg *config.Config, log *zap.Logger, script func(int) game.Input, runIndex int, seed int64, ticks int) (runStats, error) {
	ts, err := game.NewTestSim(
		game.WithConfig(func(c *config.Config) { *c = *cfg }),
		game.WithSeed(seed),
		game.WithLogger(log),
		game.WithDroneInput(script),
		game.WithHarvester(cfg.Drone.StartX+80, cfg.Field.Height/2),
	)
	if err != nil {
		return runStats{}, err
	}
	ts.RunTicks(ticks)

	st := ts.Session.Stats()
	byType := map[string]int{}
	for _, e := range ts.SimLog.Filter("zone", "zone_spawned") {
		byType[strings.SplitN(e.Zone, "/", 2)[0]]++
	}
	rs := runStats{
		runIndex:           runIndex,
		seed:               seed,
		firstSplitTick:     firstTick(ts.SimLog, "split", "splitter_reproduced"),
		firstHarvesterLoss: firstTick(ts.SimLog, "harvester", "harvester_destroyed"),
		firstHitTick:       firstTick(ts.SimLog, "drone", "hit"),
		ticksRun:           ts.CurrentTick(),
		spawned:            st.Spawned,
		expired:            st.Expired,
		culled:             st.Culled,
		destroyed:          st.Destroyed,
		splits:             st.Splits,
		children:           st.Children,
		harvestersLost:     st.HarvestersLost,
		deployed:           st.Deployed,
		peakZones:          st.PeakZones,
		level:              st.Level,
		energy:             st.Energy,
		byType:             byType,
	}
	if rs.firstHitTick > 0 {
		rs.hitTrace = ts.SimLog.FormatRange(max(1, rs.firstHitTick-hitTraceTicks), rs.firstHitTick)
	}
	return rs, nil
}

func firstTick(log *game.SimLog, category, key string) int {
	if e, ok := log.FirstOf(category, key); ok {
		return e.Tick
	}
	return -1
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(w, "markers: first_split=%d first_harvester_loss=%d drone_hit=%d ticks_run=%d\n",
		rs.firstSplitTick, rs.firstHarvesterLoss, rs.firstHitTick, rs.ticksRun)
	fmt.Fprintf(w, "zones: spawned=%d expired=%d culled=%d destroyed=%d peak=%d level=%d\n",
		rs.spawned, rs.expired, rs.culled, rs.destroyed, rs.peakZones, rs.level)
	fmt.Fprintf(w, "splits=%d children=%d harvesters: deployed=%d lost=%d energy=%.1f\n",
		rs.splits, rs.children, rs.deployed, rs.harvestersLost, rs.energy)
	fmt.Fprintf(w, "spawn_mix: %s\n\n", formatMix(rs.byType))
}

type aggregate struct {
	runs             int
	survived         int
	avgSpawned       float64
	avgExpired       float64
	avgSplits        float64
	avgHarvesterLoss float64
	avgPeak          float64
	avgHitTick       string
	mix              map[string]int
}

func summarize(all []runStats) aggregate {
	agg := aggregate{runs: len(all), mix: map[string]int{}}
	var spawned, expired, splits, lost, peak int
	var hits []int
	for _, rs := range all {
		spawned += rs.spawned
		expired += rs.expired
		splits += rs.splits
		lost += rs.harvestersLost
		peak += rs.peakZones
		if rs.firstHitTick >= 0 {
			hits = append(hits, rs.firstHitTick)
		} else {
			agg.survived++
		}
		for k, v := range rs.byType {
			agg.mix[k] += v
		}
	}
	agg.avgSpawned = avg(spawned, len(all))
	agg.avgExpired = avg(expired, len(all))
	agg.avgSplits = avg(splits, len(all))
	agg.avgHarvesterLoss = avg(lost, len(all))
	agg.avgPeak = avg(peak, len(all))
	agg.avgHitTick = avgTickString(hits)
	return agg
}

func printAggregate(w io.Writer, all []runStats) {
	agg := summarize(all)
	fmt.Fprintln(w, "=== Aggregate ===")
	fmt.Fprintf(w, "runs=%d survived=%d (%.0f%%)\n", agg.runs, agg.survived, 100*avg(agg.survived, agg.runs))
	fmt.Fprintf(w, "avg_per_run: spawned=%.1f expired=%.1f splits=%.1f harvesters_lost=%.1f peak_zones=%.1f\n",
		agg.avgSpawned, agg.avgExpired, agg.avgSplits, agg.avgHarvesterLoss, agg.avgPeak)
	fmt.Fprintf(w, "avg_drone_hit_tick=%s\n", agg.avgHitTick)
	fmt.Fprintf(w, "spawn_mix: %s\n", formatMix(agg.mix))
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

func formatMix(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	total := 0
	keys := make([]string, 0, len(m))
	for k, v := range m {
		keys = append(keys, k)
		total += v
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d(%.0f%%)", k, m[k], 100*avg(m[k], total)))
	}
	return strings.Join(parts, " ")
}
