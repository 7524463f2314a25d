package dict

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type ruleRecord struct {
	Target   string
	Patterns []string
}

type compiledRules struct {
	Rules []ruleRecord
}

type compiledVocab struct {
	Language string
	Entries  map[string]Translation
}

// SaveRuleTable writes t to dir as data.gob plus manifest.yaml. Patterns are
// stored as source text and recompiled on load.
func SaveRuleTable(t *RuleTable, dir, source string, minCount int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	data := compiledRules{Rules: make([]ruleRecord, 0, t.Len())}
	for _, r := range t.Rules() {
		data.Rules = append(data.Rules, ruleRecord{Target: r.Target, Patterns: r.Patterns})
	}
	if err := saveGob(data, filepath.Join(dir, dataFile)); err != nil {
		return err
	}

	return WriteManifest(dir, &Manifest{
		Kind:     KindRules,
		Source:   source,
		MinCount: minCount,
		Entries:  t.Len(),
		DataFile: dataFile,
		BuiltAt:  time.Now().UTC().Format(time.RFC3339),
	})
}

// SaveVocabTable writes v to dir as data.gob plus manifest.yaml.
func SaveVocabTable(v *VocabTable, dir, source string, threshold float64) error {
	if v == nil {
		return fmt.Errorf("save vocabulary: nil table")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	data := compiledVocab{Language: string(v.Language), Entries: v.entries}
	if err := saveGob(data, filepath.Join(dir, dataFile)); err != nil {
		return err
	}

	return WriteManifest(dir, &Manifest{
		Kind:      KindVocab,
		Language:  string(v.Language),
		Source:    source,
		Threshold: threshold,
		Entries:   v.Len(),
		DataFile:  dataFile,
		BuiltAt:   time.Now().UTC().Format(time.RFC3339),
	})
}

func loadCompiledRules(dir string, opts RuleOptions) (*RuleTable, error) {
	m, err := LoadManifest(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, err
	}
	if m.Kind != KindRules {
		return nil, fmt.Errorf("%s: compiled table is %q, want %q", dir, m.Kind, KindRules)
	}

	var data compiledRules
	if err := loadGob(filepath.Join(dir, m.DataFile), &data); err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	t := NewRuleTable()
	t.foldCase = opts.FoldCase
	for _, r := range data.Rules {
		if err := t.add(r.Target, r.Patterns...); err != nil {
			return nil, fmt.Errorf("%s: %w", dir, err)
		}
	}
	return t, nil
}

func loadCompiledVocab(dir string, opts VocabOptions) (*VocabTable, error) {
	m, err := LoadManifest(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, err
	}
	if m.Kind != KindVocab {
		return nil, fmt.Errorf("%s: compiled table is %q, want %q", dir, m.Kind, KindVocab)
	}
	if Language(m.Language) != opts.Language {
		return nil, fmt.Errorf("%s: compiled for language %q, want %q", dir, m.Language, opts.Language)
	}

	var data compiledVocab
	if err := loadGob(filepath.Join(dir, m.DataFile), &data); err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	t := NewVocabTable(opts.Language)
	if data.Entries != nil {
		t.entries = data.Entries
	}
	return t, nil
}

func saveGob(v any, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gob file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("encode gob: %w", err)
	}
	return f.Close()
}

func loadGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open gob file: %w", err)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode gob: %w", err)
	}
	return nil
}
