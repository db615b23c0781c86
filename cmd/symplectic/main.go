package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"symplectic/internal/accuracy"
	"symplectic/internal/config"
	"symplectic/internal/db"
	"symplectic/internal/strategy"
)

func main() {
	strategyName := flag.String("strategy", "", "Strategy to run (kelly, kelly_no_conf, market_moving_bet, bet_amount_per_threshold, always_decline)")
	paramsPath := flag.String("params", "", "Path to JSON parameter record, or - for stdin")
	marketID := flag.String("market", "", "Market identifier recorded with the decision")
	source := flag.String("source", "", "Signal source the probability estimate came from")
	reportMode := flag.Bool("report", false, "Print the per-source accuracy report and exit")
	resolveID := flag.String("resolve", "", "Decision ID to mark resolved")
	winner := flag.Int("winner", -1, "Winning outcome index for -resolve (0 or 1)")
	flag.Parse()

	configPath := "config.toml"
	if p := os.Getenv("SYM_CONFIG_PATH"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.DefaultConfig()
	} else if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.General.LogLevel),
	})))

	conn, err := db.Open(cfg.General.DBPath)
	if err != nil {
		slog.Error("failed to open decision journal", "error", err)
		os.Exit(1)
	}
	defer conn.Close()
	store := db.NewStore(conn)
	tracker := accuracy.NewTracker(store)

	switch {
	case *reportMode:
		report, err := tracker.Generate()
		if err != nil {
			slog.Error("failed to generate accuracy report", "error", err)
			os.Exit(1)
		}
		if err := accuracy.RenderReport(os.Stdout, report); err != nil {
			slog.Error("failed to render accuracy report", "error", err)
			os.Exit(1)
		}
		accuracy.LogReport(report)

	case *resolveID != "":
		if *winner != 0 && *winner != 1 {
			slog.Error("winning outcome index must be 0 or 1", "winner", *winner)
			os.Exit(1)
		}
		if err := store.Resolve(*resolveID, *winner); err != nil {
			slog.Error("failed to resolve decision", "id", *resolveID, "error", err)
			os.Exit(1)
		}
		slog.Info("decision resolved", "id", *resolveID, "winner", *winner)

	case *strategyName != "":
		if err := runSizing(cfg, store, tracker, *strategyName, *paramsPath, *marketID, *source); err != nil {
			slog.Error("sizing failed", "error", err)
			os.Exit(1)
		}

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runSizing(cfg *config.Config, store *db.Store, tracker *accuracy.Tracker, name, paramsPath, marketID, source string) error {
	s, err := strategy.ByName(cfg.Strategy, name)
	if err != nil {
		return err
	}

	params, err := loadParams(paramsPath)
	if err != nil {
		return err
	}
	params = strategy.Defaults(cfg.Strategy, s, params)

	// Feed the journal's weighted accuracy to the no-confidence sizer when
	// the caller did not supply one.
	if source != "" && params["weighted_accuracy"] == nil {
		if weighted, ok, err := tracker.Weighted(source); err != nil {
			return err
		} else if ok {
			params["weighted_accuracy"] = weighted
			slog.Debug("using journal accuracy", "source", source, "weighted_accuracy", weighted)
		}
	}

	result := strategy.Run(s, params)
	printResult(name, result)

	d := db.Decision{
		MarketID:     marketID,
		Strategy:     name,
		Source:       source,
		BetAmount:    result.BetAmount,
		OutcomeIndex: result.OutcomeIndex,
		Info:         result.Info,
		Error:        result.Error,
	}
	if p, perr := floatFromParams(params, "win_probability"); perr == nil {
		d.WinProbability = p
	}
	if c, cerr := floatFromParams(params, "confidence"); cerr == nil {
		d.Confidence = c
	}

	id, err := store.Record(d)
	if err != nil {
		return err
	}
	slog.Info("decision recorded", "id", id, "strategy", name, "market", marketID)
	return nil
}

func loadParams(path string) (strategy.Params, error) {
	if path == "" {
		return nil, fmt.Errorf("missing -params")
	}

	var reader *os.File
	if path == "-" {
		reader = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening params: %w", err)
		}
		defer f.Close()
		reader = f
	}

	// UseNumber keeps wei amounts exact: float64 cannot hold them.
	dec := json.NewDecoder(reader)
	dec.UseNumber()

	var params strategy.Params
	if err := dec.Decode(&params); err != nil {
		return nil, fmt.Errorf("decoding params: %w", err)
	}
	return params, nil
}

func floatFromParams(p strategy.Params, name string) (float64, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return 0, fmt.Errorf("param %q is missing", name)
	}
	switch vv := v.(type) {
	case float64:
		return vv, nil
	case json.Number:
		return vv.Float64()
	default:
		return 0, fmt.Errorf("param %q is not a number", name)
	}
}

func printResult(name string, r strategy.Result) {
	fmt.Printf("strategy: %s\n", name)
	if r.BetAmount != nil {
		fmt.Printf("bet_amount: %s\n", r.BetAmount)
	}
	if r.OutcomeIndex != nil {
		fmt.Printf("bet_outcome_index: %d\n", *r.OutcomeIndex)
	}
	for _, line := range r.Info {
		fmt.Printf("info: %s\n", line)
	}
	for _, line := range r.Error {
		fmt.Printf("error: %s\n", line)
	}
}

func logLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
