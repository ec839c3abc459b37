package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg CogitoConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	fillDefaults(&cfg)
	if !reflect.DeepEqual(cfg, DefaultCogitoConfig()) {
		t.Errorf("embedded defaults drifted:\n got %+v\nwant %+v", cfg, DefaultCogitoConfig())
	}
}

func TestLoadCustomPathFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cogito.yaml")
	data := []byte("movement:\n  cells_per_second: 8\nstamina:\n  drown: true\nanimations:\n  Fall:\n    ticks: 5\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadCogito(path)
	if err != nil {
		t.Fatalf("LoadCogito: %v", err)
	}

	def := DefaultCogitoConfig()
	tests := []struct {
		name string
		got  any
		want any
	}{
		{"speed overridden", cfg.Movement.CellsPerSecond, 8.0},
		{"drown overridden", cfg.Stamina.Drown, true},
		{"fall overridden", cfg.AnimationTicks("Fall"), 5},
		{"teleport default", cfg.AnimationTicks("Teleport"), def.AnimationTicks("Teleport")},
		{"epsilon default", cfg.Movement.ArrivalEpsilon, def.Movement.ArrivalEpsilon},
		{"stamina max default", cfg.Stamina.Max, def.Stamina.Max},
		{"slot default", cfg.Storage.Slot, "default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadCogito(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("movement: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCogito(path); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestUnknownAnimationLoops(t *testing.T) {
	if got := DefaultCogitoConfig().AnimationTicks("Idle"); got != 0 {
		t.Errorf("Idle ticks = %d, want 0", got)
	}
}
