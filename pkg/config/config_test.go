package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alstransform.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvPath, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CorpusPath != "../input/smallcorpus.txt" {
		t.Errorf("CorpusPath = %q", cfg.CorpusPath)
	}
	if cfg.WrapWidth != 50 || cfg.MinRuleCount != 10 {
		t.Errorf("WrapWidth = %d, MinRuleCount = %d", cfg.WrapWidth, cfg.MinRuleCount)
	}
	if cfg.SimilarityThreshold != 0 || cfg.FoldRuleCase {
		t.Errorf("threshold = %v, fold = %v", cfg.SimilarityThreshold, cfg.FoldRuleCase)
	}
	if cfg.OnMalformed != "abort" || cfg.HTTPAddr != ":8430" || cfg.LedgerPath != "" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeYAML(t, `
corpus_path: "data/corpus.txt"
wrap_width: 72
min_rule_count: 5
similarity_threshold: 0.6
fold_rule_case: true
on_malformed: skip
ledger_path: "runs.db"
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CorpusPath != "data/corpus.txt" || cfg.WrapWidth != 72 || cfg.MinRuleCount != 5 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SimilarityThreshold != 0.6 || !cfg.FoldRuleCase || cfg.OnMalformed != "skip" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.LedgerPath != "runs.db" || cfg.Log.Format != "json" {
		t.Errorf("cfg = %+v", cfg)
	}
	// Unset keys keep their defaults.
	if cfg.HTTPAddr != ":8430" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeYAML(t, "wrap_width: 30\n")
	t.Setenv("ALS_WRAP_WIDTH", "72")
	t.Setenv("ALS_HTTP_ADDR", "127.0.0.1:9000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WrapWidth != 72 || cfg.HTTPAddr != "127.0.0.1:9000" {
		t.Errorf("WrapWidth = %d, HTTPAddr = %q", cfg.WrapWidth, cfg.HTTPAddr)
	}
}

func TestLoad_ZeroWrapFromEnv(t *testing.T) {
	// cleanenv treats a zero YAML value as unset, so disabling wrapping goes
	// through the environment or the CLI flag.
	t.Setenv(EnvPath, "")
	t.Setenv("ALS_WRAP_WIDTH", "0")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WrapWidth != 0 {
		t.Errorf("WrapWidth = %d, want 0", cfg.WrapWidth)
	}
}

func TestLoad_PathFromEnv(t *testing.T) {
	path := writeYAML(t, "min_rule_count: 3\n")
	t.Setenv(EnvPath, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MinRuleCount != 3 {
		t.Errorf("MinRuleCount = %d, want 3", cfg.MinRuleCount)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"bad policy", "on_malformed: retry\n", "OnMalformed"},
		{"negative wrap", "wrap_width: -1\n", "WrapWidth"},
		{"threshold above one", "similarity_threshold: 1.5\n", "SimilarityThreshold"},
		{"bad log format", "log:\n  format: xml\n", "Format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeYAML(t, tt.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name %s", err, tt.field)
			}
		})
	}
}
