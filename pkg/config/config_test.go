package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/avosk/gridfill/pkg/fill"
)

func TestToOptions(t *testing.T) {
	cases := []struct {
		name    string
		gen     GenerationConfig
		want    fill.Options
		wantErr bool
	}{
		{
			name: "defaults map to recursive most-constrained",
			gen:  DefaultConfig().Generation,
			want: fill.Options{
				Strategy:     fill.Recursive,
				SlotOrder:    fill.MostConstrained,
				MaxDuration:  60 * time.Second,
				RepairBudget: 3,
			},
		},
		{
			name: "iterative longest-first with budgets",
			gen: GenerationConfig{
				Strategy:        "iterative",
				SlotOrder:       "longest_first",
				MaxAttempts:     500,
				TimeoutSeconds:  5,
				RepairBudget:    7,
				RequireFullFill: true,
			},
			want: fill.Options{
				Strategy:        fill.Iterative,
				SlotOrder:       fill.LongestFirst,
				MaxAttempts:     500,
				MaxDuration:     5 * time.Second,
				RepairBudget:    7,
				RequireFullFill: true,
			},
		},
		{
			name: "randomized carries the seed",
			gen:  GenerationConfig{Randomized: true, Seed: 99, TimeoutSeconds: 60, RepairBudget: 3},
			want: fill.Options{
				Strategy:     fill.Recursive,
				SlotOrder:    fill.MostConstrained,
				TieBreak:     fill.Randomized,
				Seed:         99,
				MaxDuration:  60 * time.Second,
				RepairBudget: 3,
			},
		},
		{
			name:    "unknown strategy",
			gen:     GenerationConfig{Strategy: "annealing"},
			wantErr: true,
		},
		{
			name:    "unknown slot order",
			gen:     GenerationConfig{SlotOrder: "shortest_first"},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Generation = tc.gen
			opts, err := cfg.ToOptions()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ToOptions: %v", err)
			}
			if opts != tc.want {
				t.Errorf("opts = %+v, want %+v", opts, tc.want)
			}
		})
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.Generation.Strategy = "iterative"
	cfg.Sources.WordFiles = []string{"words.txt"}
	cfg.Sources.Blacklist = []string{"bad"}
	cfg.CLI.MaxResults = 10

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Generation.Strategy != "iterative" {
		t.Errorf("Strategy = %q", got.Generation.Strategy)
	}
	if len(got.Sources.WordFiles) != 1 || got.Sources.WordFiles[0] != "words.txt" {
		t.Errorf("WordFiles = %v", got.Sources.WordFiles)
	}
	if got.CLI.MaxResults != 10 {
		t.Errorf("MaxResults = %d", got.CLI.MaxResults)
	}
}

func TestInitConfigCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if cfg.Generation.Strategy != "recursive" {
		t.Errorf("Strategy = %q, want recursive", cfg.Generation.Strategy)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestLoadConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	partial := "[generation]\nstrategy = \"iterative\"\n"
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Generation.Strategy != "iterative" {
		t.Errorf("Strategy = %q", cfg.Generation.Strategy)
	}
	if cfg.Generation.TimeoutSeconds != 60 {
		t.Errorf("TimeoutSeconds = %d, want default 60", cfg.Generation.TimeoutSeconds)
	}
	if cfg.CLI.MaxResults != 24 {
		t.Errorf("MaxResults = %d, want default 24", cfg.CLI.MaxResults)
	}
}
