// Copyright 2026 The Gridfill Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the crossword generation server and CLI application.

Gridfill fills crossword grids from word lists. Given a grid pattern where
'*' marks blocked cells and '_' marks empty ones, it assigns a word to every
across and down slot so that crossing letters agree, no word repeats and no
blacklisted word appears. It can operate as a MessagePack IPC server for
integration with editors, or as a CLI application for one-shot generation
and debugging.

Two engines are available. The recursive engine backtracks through the full
assignment tree and finds a complete fill when one exists within budget. The
iterative engine fills the most constrained slot first and repairs local
conflicts instead of backtracking; it is faster on large grids but may leave
slots empty.

# Usage

Fill a grid from a word list:

	gridfill -grid puzzle.txt -words english.txt

Try both engines and keep the better fill:

	gridfill -grid puzzle.txt -words english.txt -method both

Use a SQLite word database and randomized candidate order:

	gridfill -grid puzzle.txt -db words.db -randomized -seed 7

Run the IPC server for editor integration:

	gridfill -serve -words english.txt

Interactively query what a word list offers a pattern:

	gridfill -c -words english.txt

# Grid files

A grid file is plain text, one row per line, every row the same width:

	___*___
	_*_*_*_
	___*___

Letters may be pre-filled; the engines keep them and never rip them out.

# Configuration

Runtime configuration is managed through a TOML file that supports engine
parameters, word sources and CLI defaults:

	[generation]
	strategy = "recursive"
	timeout_seconds = 60
	repair_budget = 3

	[sources]
	word_files = ["english.txt"]
	blacklist = ["crud"]

The config file is automatically created with defaults if it doesn't exist.
Command line flags override config values for the current run.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Fill requests are
processed synchronously with microsecond timing information included in
responses.

Send a fill request:

	{"id": "req1", "g": ["___", "*__", "___"], "m": "iterative"}

Receive the filled grid with assignments and score:

	{"id": "req1", "g": ["cat", "*re", "wed"], "a": [...], "ok": true, "t": 145}

Pattern lookups are also supported, for clients that drive their own editing
loop:

	{"id": "look1", "q": "c?t"}

# Command Line Flags

The following flags control application behavior:

	-grid string
	    Grid pattern file to fill
	-words string
	    Word list file; repeatable via comma separation
	-db string
	    SQLite word database
	-compile string
	    Compile the -words files into a binary list and exit
	-method string
	    Engine: recursive, iterative or both (default from config)
	-timeout duration
	    Wall-clock budget for the fill
	-attempts int
	    Maximum word placements to try (0 for unlimited)
	-randomized
	    Shuffle equally ranked candidates
	-seed int
	    Seed for -randomized; same seed, same fill
	-require-full
	    Fail instead of returning a partial fill
	-repairs int
	    Iterative engine repairs per slot before giving up
	-serve
	    Run the MessagePack IPC server
	-c  Run the interactive pattern lookup
	-d  Enable debug mode with detailed logging

Word sources given on the command line are searched before the ones from the
config file, and earlier -words files rank above later ones.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/avosk/gridfill/internal/cli"
	"github.com/avosk/gridfill/internal/utils"
	"github.com/avosk/gridfill/pkg/config"
	"github.com/avosk/gridfill/pkg/fill"
	"github.com/avosk/gridfill/pkg/grid"
	"github.com/avosk/gridfill/pkg/server"
	"github.com/avosk/gridfill/pkg/wordsrc"
)

const (
	Version = "0.6.0"
	AppName = "gridfill"
	gh      = "https://github.com/avosk/gridfill"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nStopping...\n")
		cancel()
	}()
}

// main wires flags, config and sources together and hands off to the chosen
// mode. It does not implement fill logic itself.
func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to config.toml")
	gridPath := flag.String("grid", "", "Grid pattern file to fill")
	wordFiles := flag.String("words", "", "Comma-separated word list files")
	dbPath := flag.String("db", "", "SQLite word database")
	delim := flag.String("delim", "", "Word file delimiter (default space)")
	method := flag.String("method", "", "Engine: recursive, iterative or both")
	timeout := flag.Duration("timeout", 0, "Wall-clock budget for the fill")
	attempts := flag.Int("attempts", 0, "Maximum word placements to try (0 for unlimited)")
	randomized := flag.Bool("randomized", false, "Shuffle equally ranked candidates")
	seed := flag.Int64("seed", 0, "Seed for -randomized")
	requireFull := flag.Bool("require-full", false, "Fail instead of returning a partial fill")
	repairs := flag.Int("repairs", 0, "Iterative engine repairs per slot before giving up")
	compilePath := flag.String("compile", "", "Compile the -words files into a binary list and exit")
	serveMode := flag.Bool("serve", false, "Run the MessagePack IPC server")
	cliMode := flag.Bool("c", false, "Run the interactive pattern lookup")
	debugMode := flag.Bool("d", false, "Toggle debug mode")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if activePath != "" {
		log.Debugf("Using config file: (%s)", activePath)
	}

	applyFlagOverrides(cfg, method, timeout, attempts, randomized, seed, requireFull, repairs)

	if *compilePath != "" {
		if err := compileWords(*wordFiles, *delim, *compilePath); err != nil {
			log.Fatalf("Failed to compile word list: %v", err)
		}
		return
	}

	source, closers, err := buildSources(cfg, *wordFiles, *dbPath, *delim)
	if err != nil {
		log.Fatalf("Failed to load word sources: %v", err)
	}
	defer func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				log.Warnf("Closing source: %v", err)
			}
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigHandler(cancel)

	switch {
	case *cliMode:
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(source, cfg.CLI.MaxResults)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
	case *serveMode:
		log.Debug("spawning IPC")
		srv := server.NewServer(cfg, source)
		if err := srv.Start(ctx); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case *gridPath != "":
		if err := runFill(ctx, cfg, source, *gridPath, *method); err != nil {
			log.Fatalf("%v", err)
		}
	default:
		fmt.Fprintln(os.Stderr, "Nothing to do: pass -grid, -serve or -c. See -h for options.")
		os.Exit(2)
	}
}

// applyFlagOverrides writes explicit command line values over the config.
func applyFlagOverrides(cfg *config.Config, method *string, timeout *time.Duration,
	attempts *int, randomized *bool, seed *int64, requireFull *bool, repairs *int,
) {
	if *method != "" && *method != "both" {
		cfg.Generation.Strategy = *method
	}
	if *timeout > 0 {
		cfg.Generation.TimeoutSeconds = int(timeout.Seconds())
	}
	if *attempts > 0 {
		cfg.Generation.MaxAttempts = *attempts
	}
	if *randomized {
		cfg.Generation.Randomized = true
		cfg.Generation.Seed = *seed
	}
	if *requireFull {
		cfg.Generation.RequireFullFill = true
	}
	if *repairs > 0 {
		cfg.Generation.RepairBudget = *repairs
	}
}

type closer interface{ Close() error }

// buildSources assembles the word sources from flags and config, command
// line first.
func buildSources(cfg *config.Config, wordFiles, dbPath, delim string) (wordsrc.Source, []closer, error) {
	sep := firstRune(delim)
	if sep == 0 {
		sep = firstRune(cfg.Sources.Delimiter)
	}
	if sep == 0 {
		sep = ' '
	}

	multi := wordsrc.NewMultiSource()
	var closers []closer

	var files []string
	if wordFiles != "" {
		files = strings.Split(wordFiles, ",")
	}
	files = append(files, cfg.Sources.WordFiles...)
	for _, path := range files {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		src, err := loadWordFile(path, sep)
		if err != nil {
			return nil, closers, fmt.Errorf("word file %s: %w", path, err)
		}
		log.Debugf("Loaded %d words from %s", src.Len(), path)
		multi.Add(src)
	}

	if dbPath == "" {
		dbPath = cfg.Sources.Database
	}
	if dbPath != "" {
		db, err := wordsrc.OpenDB(dbPath)
		if err != nil {
			return nil, closers, fmt.Errorf("word database %s: %w", dbPath, err)
		}
		closers = append(closers, db)
		multi.Add(db)
	}

	if multi.Len() == 0 {
		return nil, closers, errors.New("no word sources: pass -words or -db, or set [sources] in the config")
	}
	return multi, closers, nil
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// loadWordFile picks the loader by extension: compiled .bin lists, otherwise
// plain text.
func loadWordFile(path string, sep rune) (*wordsrc.MemorySource, error) {
	abs := utils.GetAbsolutePath(path)
	if strings.EqualFold(filepath.Ext(path), ".bin") {
		return wordsrc.LoadBinary(abs)
	}
	return wordsrc.LoadFile(abs, sep)
}

// compileWords merges the given text lists into one compiled binary list.
func compileWords(wordFiles, delim, outPath string) error {
	if wordFiles == "" {
		return errors.New("-compile needs -words files to read from")
	}
	sep := firstRune(delim)
	if sep == 0 {
		sep = ' '
	}

	merged := wordsrc.NewMemorySource()
	for _, path := range strings.Split(wordFiles, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		src, err := loadWordFile(path, sep)
		if err != nil {
			return fmt.Errorf("word file %s: %w", path, err)
		}
		for _, e := range src.Entries() {
			merged.AddWord(e.Word, e.Freq)
		}
	}
	if merged.Len() == 0 {
		return errors.New("no usable words to compile")
	}
	if err := wordsrc.SaveBinary(merged, outPath); err != nil {
		return err
	}
	fmt.Printf("compiled %d words into %s\n", merged.Len(), outPath)
	return nil
}

// runFill loads the grid, runs the configured engine (or both) and prints
// the outcome.
func runFill(ctx context.Context, cfg *config.Config, source wordsrc.Source, gridPath, method string) error {
	rows, err := loadGridFile(gridPath)
	if err != nil {
		return err
	}

	opts, err := cfg.ToOptions()
	if err != nil {
		return err
	}

	var res *fill.Result
	var g *grid.Grid
	if method == "both" {
		g, res, err = fillBoth(ctx, cfg, opts, source, rows)
	} else {
		g, err = grid.Parse(rows)
		if err != nil {
			return err
		}
		f := fill.New(opts, source)
		f.SetBlacklist(cfg.Sources.Blacklist...)
		res, err = f.Fill(ctx, g)
	}
	if err != nil && !errors.Is(err, fill.ErrNoSolution) {
		return err
	}

	printResult(cfg, g, res)
	if errors.Is(err, fill.ErrNoSolution) {
		return errors.New("no full fill exists within budget")
	}
	return nil
}

// fillBoth runs both engines on private copies of the grid and keeps the
// better score. Ties go to the recursive engine.
func fillBoth(ctx context.Context, cfg *config.Config, opts fill.Options, source wordsrc.Source, rows []string) (*grid.Grid, *fill.Result, error) {
	run := func(strategy fill.Strategy) (*grid.Grid, *fill.Result, error) {
		g, err := grid.Parse(rows)
		if err != nil {
			return nil, nil, err
		}
		o := opts
		o.Strategy = strategy
		f := fill.New(o, source)
		f.SetBlacklist(cfg.Sources.Blacklist...)
		res, err := f.Fill(ctx, g)
		if err != nil && !errors.Is(err, fill.ErrNoSolution) {
			return nil, nil, err
		}
		return g, res, err
	}

	recGrid, recRes, recErr := run(fill.Recursive)
	if recErr != nil && !errors.Is(recErr, fill.ErrNoSolution) {
		return nil, nil, recErr
	}
	iterGrid, iterRes, iterErr := run(fill.Iterative)
	if iterErr != nil && !errors.Is(iterErr, fill.ErrNoSolution) {
		return nil, nil, iterErr
	}

	if iterRes.Score.Better(recRes.Score) {
		log.Debug("keeping iterative fill", "score", fmt.Sprintf("%+v", iterRes.Score))
		return iterGrid, iterRes, iterErr
	}
	log.Debug("keeping recursive fill", "score", fmt.Sprintf("%+v", recRes.Score))
	return recGrid, recRes, recErr
}

// loadGridFile reads a grid pattern file into row strings. Trailing blank
// lines are ignored; interior ones are not, so a malformed file still fails
// in Parse.
func loadGridFile(path string) ([]string, error) {
	data, err := os.ReadFile(utils.GetAbsolutePath(path))
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("grid file %s is empty", path)
	}
	return lines, nil
}

var (
	blockedStyle = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#26233a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#6e6a86"})
	letterStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"})
)

// printResult renders the grid and the run summary to stdout.
func printResult(cfg *config.Config, g *grid.Grid, res *fill.Result) {
	fmt.Println()
	for _, row := range g.TextRows() {
		var b strings.Builder
		for _, r := range row {
			cell := " " + string(r) + " "
			switch r {
			case grid.Blocked:
				b.WriteString(blockedStyle.Render(" # "))
			case grid.Blank:
				b.WriteString(emptyStyle.Render(" . "))
			default:
				b.WriteString(letterStyle.Render(cell))
			}
		}
		fmt.Println(b.String())
	}
	fmt.Println()

	state := "complete"
	if !res.Complete {
		state = "partial"
	}
	fmt.Printf("%s fill: %d words placed\n", state, len(res.Assignments))
	if cfg.CLI.ShowScore {
		fmt.Printf("score: %.0f%% cells, %.0f%% slots, %d unique words\n",
			res.Score.FilledCellRatio*100, res.Score.FilledSlotRatio*100, res.Score.UniqueWords)
	}
	if cfg.CLI.ShowTiming {
		fmt.Printf("timing: %d attempts in %s\n", res.Attempts, res.Duration.Round(time.Millisecond))
	}
}

// printVersion shows the styled version banner.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Printf("[ %s ] Fills crossword grids from word lists", AppName)
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}
