// Command fateloom is the thin driver around the interaction core: it loads
// agent snapshots, runs rounds or series, performs destiny rolls, and prints
// JSON summaries. All state lives in snapshot files and the optional SQLite
// round log; the core itself does no I/O.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/talgya/fateloom/internal/agents"
	"github.com/talgya/fateloom/internal/entropy"
	"github.com/talgya/fateloom/internal/fate"
	"github.com/talgya/fateloom/internal/persistence"
	"github.com/talgya/fateloom/internal/sim"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "round":
		err = cmdRound(os.Args[2:])
	case "series":
		err = cmdSeries(os.Args[2:])
	case "roll":
		err = cmdRoll(os.Args[2:])
	case "stats":
		err = cmdStats(os.Args[2:])
	case "spawn":
		err = cmdSpawn(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		slog.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: fateloom <command> [flags]

commands:
  round   run a single interaction round between two agents
  series  run a multi-round series, optionally with a scripted betrayal
  roll    perform a destiny roll against an agent's fate state
  stats   summarize a series round log
  spawn   write a preset agent snapshot`)
}

// printJSON writes v to stdout, indented when attached to a terminal.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	if isatty.IsTerminal(os.Stdout.Fd()) {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func loadAgent(path string) (*agents.Agent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read agent: %w", err)
	}
	return agents.FromJSON(data)
}

func saveAgent(path string, a *agents.Agent) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func parseForced(s string) (*sim.Action, error) {
	switch s {
	case "":
		return nil, nil
	case "C", "D":
		a := sim.Action(s)
		return &a, nil
	default:
		return nil, fmt.Errorf("forced action must be C or D, got %q", s)
	}
}

func cmdRound(args []string) error {
	fs := flag.NewFlagSet("round", flag.ExitOnError)
	pathA := fs.String("a", "", "path to agent A snapshot JSON")
	pathB := fs.String("b", "", "path to agent B snapshot JSON")
	outA := fs.String("out-a", "", "where to write updated agent A (default: overwrite -a)")
	outB := fs.String("out-b", "", "where to write updated agent B (default: overwrite -b)")
	forceA := fs.String("force-a", "", "force agent A's action (C or D)")
	forceB := fs.String("force-b", "", "force agent B's action (C or D)")
	seed := fs.Int64("seed", 0, "RNG seed (0 = non-deterministic)")
	fs.Parse(args)

	if *pathA == "" || *pathB == "" {
		return fmt.Errorf("round: -a and -b are required")
	}

	a, err := loadAgent(*pathA)
	if err != nil {
		return err
	}
	b, err := loadAgent(*pathB)
	if err != nil {
		return err
	}

	var opts sim.RoundOptions
	if opts.ForcedA, err = parseForced(*forceA); err != nil {
		return err
	}
	if opts.ForcedB, err = parseForced(*forceB); err != nil {
		return err
	}

	var src entropy.Source
	if *seed != 0 {
		src = entropy.Seeded(*seed)
	} else {
		src = entropy.Crypto()
	}

	summary, nextA, nextB, err := sim.RunRound(a, b, opts, src)
	if err != nil {
		return err
	}
	summary.Round = 1

	if dst := orDefault(*outA, *pathA); dst != "" {
		if err := saveAgent(dst, nextA); err != nil {
			return err
		}
	}
	if dst := orDefault(*outB, *pathB); dst != "" {
		if err := saveAgent(dst, nextB); err != nil {
			return err
		}
	}

	return printJSON(summary)
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func cmdSeries(args []string) error {
	fs := flag.NewFlagSet("series", flag.ExitOnError)
	pathA := fs.String("a", "", "path to agent A snapshot JSON")
	pathB := fs.String("b", "", "path to agent B snapshot JSON")
	rounds := fs.Int("rounds", 10, "number of rounds to run")
	betrayalB := fs.Int("betrayal-round-b", 0, "round on which B hard-defects while A cooperates (0 = never)")
	drift := fs.Bool("drift", false, "enable ambient awe/boredom drift")
	seed := fs.Int64("seed", 0, "RNG seed (0 = non-deterministic)")
	outA := fs.String("out-a-final", "", "where to write final agent A")
	outB := fs.String("out-b-final", "", "where to write final agent B")
	dbPath := fs.String("db", "", "SQLite path for the round log (optional)")
	runID := fs.String("run-id", "series", "run id for the round log")
	fs.Parse(args)

	if *pathA == "" || *pathB == "" {
		return fmt.Errorf("series: -a and -b are required")
	}

	a, err := loadAgent(*pathA)
	if err != nil {
		return err
	}
	b, err := loadAgent(*pathB)
	if err != nil {
		return err
	}

	cfg := sim.SeriesConfig{
		Rounds:         *rounds,
		BetrayalRoundB: *betrayalB,
		Seed:           *seed,
		Drift:          *drift,
	}

	slog.Info("running series",
		"a", a.Name,
		"b", b.Name,
		"rounds", humanize.Comma(int64(cfg.Rounds)),
		"seed", cfg.Seed,
	)
	if cfg.BetrayalRoundB > 0 {
		slog.Info("scripted betrayal armed",
			"betrayer", b.Name,
			"round", humanize.Ordinal(cfg.BetrayalRoundB),
		)
	}

	result, err := sim.RunSeries(a, b, cfg)
	if err != nil {
		return err
	}

	if *dbPath != "" {
		db, err := persistence.Open(*dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.LogRounds(*runID, result.Rounds); err != nil {
			return err
		}
		if err := db.SaveAgent(result.FinalA); err != nil {
			return err
		}
		if err := db.SaveAgent(result.FinalB); err != nil {
			return err
		}
		slog.Info("round log saved", "db", *dbPath, "run_id", *runID)
	}

	if *outA != "" {
		if err := saveAgent(*outA, result.FinalA); err != nil {
			return err
		}
	}
	if *outB != "" {
		if err := saveAgent(*outB, result.FinalB); err != nil {
			return err
		}
	}

	for _, r := range result.Rounds {
		if err := printJSON(r); err != nil {
			return err
		}
	}
	return nil
}

func cmdRoll(args []string) error {
	fs := flag.NewFlagSet("roll", flag.ExitOnError)
	pathA := fs.String("a", "", "path to agent snapshot JSON")
	dc := fs.Int("dc", fate.DefaultDC, "difficulty class")
	advantage := fs.Bool("advantage", false, "request advantage")
	disadvantage := fs.Bool("disadvantage", false, "request disadvantage")
	seed := fs.Int64("seed", 0, "RNG seed (0 = non-deterministic)")
	fs.Parse(args)

	if *pathA == "" {
		return fmt.Errorf("roll: -a is required")
	}
	a, err := loadAgent(*pathA)
	if err != nil {
		return err
	}

	var src entropy.Source
	if *seed != 0 {
		src = entropy.Seeded(*seed)
	} else {
		src = entropy.Crypto()
	}

	result := fate.RollDestiny(a.Fate, fate.RollOptions{
		DC:           *dc,
		Advantage:    *advantage,
		Disadvantage: *disadvantage,
	}, src)

	slog.Info("destiny roll",
		"agent", a.Name,
		"roll_type", result.RollType,
		"total", result.Total,
		"success", result.Success,
	)
	return printJSON(result)
}

func cmdStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	dbPath := fs.String("db", "", "SQLite path holding the round log")
	runID := fs.String("run-id", "series", "run id to summarize")
	fs.Parse(args)

	if *dbPath == "" {
		return fmt.Errorf("stats: -db is required")
	}

	db, err := persistence.Open(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	rounds, err := db.LoadRounds(*runID)
	if err != nil {
		return err
	}

	stats, err := sim.Summarize(rounds)
	if err != nil {
		return err
	}

	slog.Info("series summarized",
		"run_id", *runID,
		"rounds", humanize.Comma(int64(stats.Rounds)),
		"betrayals_a", stats.Betrayals.A,
		"betrayals_b", stats.Betrayals.B,
	)
	return printJSON(stats)
}

func cmdSpawn(args []string) error {
	fs := flag.NewFlagSet("spawn", flag.ExitOnError)
	preset := fs.String("preset", "", "preset name: paladin, puck, warlock, villager")
	out := fs.String("out", "", "where to write the agent snapshot")
	fs.Parse(args)

	if *preset == "" || *out == "" {
		return fmt.Errorf("spawn: -preset and -out are required")
	}

	a, err := agents.Spawn(agents.Preset(*preset))
	if err != nil {
		return err
	}
	if err := saveAgent(*out, a); err != nil {
		return err
	}
	slog.Info("agent spawned", "name", a.Name, "id", a.ID, "out", *out)
	return nil
}
