package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mmprep.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if !cfg.Tokenize.Clean || cfg.BLEU.MaxOrder != want.BLEU.MaxOrder || cfg.Output.Format != FormatAuto {
		t.Errorf("Load(\"\") = %+v, want %+v", cfg, want)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[tokenize]
clean = false

[bleu]
max_order = 2
weights = [0.7, 0.3]

[output]
format = " JSON "
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Tokenize.Clean {
		t.Error("tokenize.clean = true, want false")
	}
	if cfg.BLEU.MaxOrder != 2 {
		t.Errorf("bleu.max_order = %d, want 2", cfg.BLEU.MaxOrder)
	}
	if len(cfg.BLEU.Weights) != 2 || cfg.BLEU.Weights[0] != 0.7 {
		t.Errorf("bleu.weights = %v, want [0.7 0.3]", cfg.BLEU.Weights)
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("output.format = %q, want %q", cfg.Output.Format, FormatJSON)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log.level = %q, want default info", cfg.Logging.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad format", "[output]\nformat = \"yaml\"\n", "output.format"},
		{"bad log format", "[log]\nformat = \"xml\"\n", "log.format"},
		{"zero order", "[bleu]\nmax_order = 0\n", "bleu.max_order"},
		{"negative weight", "[bleu]\nweights = [0.5, -1.0]\n", "bleu.weights[1]"},
		{"unknown key", "[tokenize]\nlowercase = true\n", "parse config"},
		{"malformed toml", "[bleu\n", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil || !strings.Contains(err.Error(), "open config") {
		t.Errorf("err = %v, want open config error", err)
	}
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	cfg := Default()
	if err := toml.Unmarshal([]byte(SampleConfig()), &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config invalid: %v", err)
	}

	want := Default()
	if cfg.Tokenize != want.Tokenize || cfg.Output != want.Output || cfg.Logging != want.Logging {
		t.Errorf("sample config = %+v, want defaults %+v", cfg, want)
	}
	if cfg.BLEU.MaxOrder != want.BLEU.MaxOrder || len(cfg.BLEU.Weights) != 0 {
		t.Errorf("sample bleu = %+v, want %+v", cfg.BLEU, want.BLEU)
	}
}

func TestScoreOptions(t *testing.T) {
	cfg := Default()
	if got := len(cfg.ScoreOptions()); got != 1 {
		t.Fatalf("len(ScoreOptions) = %d, want 1", got)
	}
	cfg.BLEU.Weights = []float64{1}
	if got := len(cfg.ScoreOptions()); got != 1 {
		t.Fatalf("len(ScoreOptions) = %d, want 1", got)
	}
}
