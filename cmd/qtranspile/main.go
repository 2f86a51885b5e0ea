package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"qtranspile"
)

// pipelineFile is the YAML shape accepted by -pipeline.
type pipelineFile struct {
	Sequence string   `yaml:"sequence"`
	Passes   []string `yaml:"passes"`
	KeepCCX  bool     `yaml:"keep_ccx"`
	KeepCX   bool     `yaml:"keep_cx"`
	Epsilon  *float64 `yaml:"epsilon"`
	Silent   bool     `yaml:"silent"`
}

func main() {
	// .env may carry defaults; missing files are fine.
	_ = godotenv.Load()

	input := flag.String("i", os.Getenv("QTRANSPILE_INPUT"), "input QASM file")
	output := flag.String("o", "", "output QASM file (default: stdout)")
	seq := flag.String("seq", envOr("QTRANSPILE_SEQUENCE", "TO_CLIFFORD_T"), "predefined pass sequence")
	passList := flag.String("passes", "", "comma-separated pass kinds (overrides -seq)")
	pipeline := flag.String("pipeline", "", "YAML pipeline file (overrides -seq and -passes)")
	keepCCX := flag.Bool("keep-ccx", false, "preserve ccx during decomposition")
	keepCX := flag.Bool("keep-cx", false, "preserve cx through PBC conversion")
	epsilon := flag.Float64("epsilon", -1, "epsilon override for RZ synthesis (negative: per-angle default)")
	silent := flag.Bool("silent", false, "suppress the pass execution table")
	report := flag.String("report", "", "write an HTML pass report to this path")
	draw := flag.Bool("draw", false, "print the circuit before and after")
	tui := flag.Bool("tui", false, "open the interactive viewer")
	logLevel := flag.String("log-level", envOr("QTRANSPILE_LOG_LEVEL", "warn"), "log level: debug, info, warn, error")
	flag.Parse()

	log := newLogger(*logLevel)

	if *input == "" {
		log.Fatal().Msg("no input circuit: pass -i file.qasm")
	}
	text, err := os.ReadFile(*input)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read input")
	}
	circuit, err := qtranspile.ParseQASM(string(text))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse QASM")
	}

	cfg := qtranspile.DefaultPassConfig()
	cfg.KeepCCX = *keepCCX
	cfg.KeepCX = *keepCX
	cfg.EpsilonOverride = *epsilon
	cfg.Silent = *silent

	kinds, err := resolvePasses(*pipeline, *passList, *seq, &cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to resolve pass list")
	}

	if *tui {
		if err := runTUI(circuit, kinds, cfg, log); err != nil {
			log.Fatal().Err(err).Msg("viewer failed")
		}
		return
	}

	if *draw {
		fmt.Println("Input circuit:")
		fmt.Println(qtranspile.Render(circuit))
	}

	t := qtranspile.NewTranspiler(qtranspile.WithLogger(log))
	result, err := t.Execute(circuit, kinds, cfg)
	if err != nil {
		log.Error().Err(err).Msg("pipeline aborted; emitting the partially transformed circuit")
	}

	if *draw {
		fmt.Println("Output circuit:")
		fmt.Println(qtranspile.Render(result))
	}
	if *report != "" {
		if err := qtranspile.WriteReport(t.History(), *report); err != nil {
			log.Error().Err(err).Msg("failed to write report")
		}
	}

	qasm := qtranspile.WriteQASM(result)
	if *output == "" {
		fmt.Print(qasm)
		return
	}
	if err := os.WriteFile(*output, []byte(qasm), 0o644); err != nil {
		log.Fatal().Err(err).Msg("failed to write output")
	}
}

// resolvePasses picks the pass list from, in priority order, the
// pipeline file, -passes, or a predefined sequence name.
func resolvePasses(pipelinePath, passList, seq string, cfg *qtranspile.PassConfig) ([]qtranspile.PassKind, error) {
	if pipelinePath != "" {
		text, err := os.ReadFile(pipelinePath)
		if err != nil {
			return nil, err
		}
		var pf pipelineFile
		if err := yaml.Unmarshal(text, &pf); err != nil {
			return nil, fmt.Errorf("parse %s: %w", pipelinePath, err)
		}
		cfg.KeepCCX = pf.KeepCCX
		cfg.KeepCX = pf.KeepCX
		if pf.Epsilon != nil {
			cfg.EpsilonOverride = *pf.Epsilon
		}
		cfg.Silent = pf.Silent
		if len(pf.Passes) > 0 {
			return parsePassKinds(strings.Join(pf.Passes, ","))
		}
		if pf.Sequence != "" {
			seq = pf.Sequence
			passList = ""
		}
	}
	if passList != "" {
		return parsePassKinds(passList)
	}
	kinds, ok := qtranspile.SequenceByName(seq)
	if !ok {
		return nil, fmt.Errorf("unknown sequence %q", seq)
	}
	return kinds, nil
}

func parsePassKinds(list string) ([]qtranspile.PassKind, error) {
	var kinds []qtranspile.PassKind
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(strings.ToUpper(part))
		if part == "" {
			continue
		}
		kinds = append(kinds, qtranspile.PassKind(part))
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("empty pass list")
	}
	return kinds, nil
}

func newLogger(level string) zerolog.Logger {
	lvl := zerolog.WarnLevel
	switch level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "info":
		lvl = zerolog.InfoLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
