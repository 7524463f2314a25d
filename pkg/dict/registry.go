package dict

import (
	"fmt"
	"sync"
)

// Sources tells a Registry where its tables come from. An empty path leaves
// that table unloaded.
type Sources struct {
	RulesPath string
	VocabPath string
	Rules     RuleOptions
	Vocab     VocabOptions
}

// Registry holds the loaded tables for long-running callers (HTTP, MCP) and
// swaps them atomically on reload.
type Registry struct {
	mu    sync.RWMutex
	src   Sources
	rules *RuleTable
	vocab *VocabTable
}

// NewRegistry creates an empty registry for the given sources.
func NewRegistry(src Sources) *Registry {
	return &Registry{src: src}
}

// Load builds every configured table.
func (r *Registry) Load() error {
	var (
		rules *RuleTable
		vocab *VocabTable
		err   error
	)
	if r.src.RulesPath != "" {
		rules, err = LoadRuleTable(r.src.RulesPath, r.src.Rules)
		if err != nil {
			return fmt.Errorf("load rules %s: %w", r.src.RulesPath, err)
		}
	}
	if r.src.VocabPath != "" {
		vocab, err = LoadVocabTable(r.src.VocabPath, r.src.Vocab)
		if err != nil {
			return fmt.Errorf("load vocabulary %s: %w", r.src.VocabPath, err)
		}
	}

	r.mu.Lock()
	r.rules = rules
	r.vocab = vocab
	r.mu.Unlock()
	return nil
}

// Reload rebuilds all tables from disk. On error the previous tables stay.
func (r *Registry) Reload() error {
	return r.Load()
}

// Rules returns the current rule table, or nil when none is configured.
func (r *Registry) Rules() *RuleTable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rules
}

// Vocab returns the current vocabulary table, or nil when none is configured.
func (r *Registry) Vocab() *VocabTable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.vocab
}

// TableInfo is the public description of a loaded table.
type TableInfo struct {
	Kind     string `json:"kind"`
	Source   string `json:"source"`
	Language string `json:"language,omitempty"`
	Entries  int    `json:"entries"`
}

// ListTables describes the loaded tables, rules first.
func (r *Registry) ListTables() []TableInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var infos []TableInfo
	if r.rules != nil {
		infos = append(infos, TableInfo{Kind: KindRules, Source: r.src.RulesPath, Entries: r.rules.Len()})
	}
	if r.vocab != nil {
		infos = append(infos, TableInfo{
			Kind:     KindVocab,
			Source:   r.src.VocabPath,
			Language: string(r.vocab.Language),
			Entries:  r.vocab.Len(),
		})
	}
	return infos
}

// TotalEntries returns the number of entries across loaded tables.
func (r *Registry) TotalEntries() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rules.Len() + r.vocab.Len()
}
