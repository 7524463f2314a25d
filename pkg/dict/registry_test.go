package dict

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTables(t *testing.T) (rulesPath, vocabPath string) {
	t.Helper()
	dir := t.TempDir()
	rulesPath = filepath.Join(dir, "rules.txt")
	vocabPath = filepath.Join(dir, "aligned.txt")
	if err := os.WriteFile(rulesPath, []byte(ruleFixture), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(vocabPath, []byte(vocabFixture), 0o644); err != nil {
		t.Fatal(err)
	}
	return rulesPath, vocabPath
}

func TestRegistryLoad(t *testing.T) {
	rulesPath, vocabPath := writeTables(t)
	reg := NewRegistry(Sources{
		RulesPath: rulesPath,
		VocabPath: vocabPath,
		Vocab:     VocabOptions{Language: German},
	})
	if err := reg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if reg.Rules().Len() != 3 {
		t.Errorf("rules = %d, want 3", reg.Rules().Len())
	}
	if reg.Vocab().Len() != 4 {
		t.Errorf("vocab = %d, want 4", reg.Vocab().Len())
	}
	if reg.TotalEntries() != 7 {
		t.Errorf("TotalEntries = %d, want 7", reg.TotalEntries())
	}

	infos := reg.ListTables()
	if len(infos) != 2 {
		t.Fatalf("ListTables = %d, want 2", len(infos))
	}
	if infos[0].Kind != KindRules || infos[1].Kind != KindVocab {
		t.Errorf("order = %s, %s; want rules, vocab", infos[0].Kind, infos[1].Kind)
	}
	if infos[1].Language != "de" || infos[1].Source != vocabPath {
		t.Errorf("vocab info = %+v", infos[1])
	}
}

func TestRegistryLoad_OnlyRules(t *testing.T) {
	rulesPath, _ := writeTables(t)
	reg := NewRegistry(Sources{RulesPath: rulesPath})
	if err := reg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reg.Vocab() != nil {
		t.Error("vocab should be nil when not configured")
	}
	if len(reg.ListTables()) != 1 {
		t.Errorf("ListTables = %d, want 1", len(reg.ListTables()))
	}
}

func TestRegistryReload(t *testing.T) {
	rulesPath, _ := writeTables(t)
	reg := NewRegistry(Sources{RulesPath: rulesPath})
	if err := reg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reg.Rules().Len() != 3 {
		t.Fatalf("rules = %d, want 3", reg.Rules().Len())
	}

	if err := os.WriteFile(rulesPath, []byte("uu\tu\t50\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := reg.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if reg.Rules().Len() != 1 {
		t.Errorf("rules after reload = %d, want 1", reg.Rules().Len())
	}
}

func TestRegistryLoad_UnsupportedLanguage(t *testing.T) {
	_, vocabPath := writeTables(t)
	reg := NewRegistry(Sources{VocabPath: vocabPath, Vocab: VocabOptions{Language: "xx"}})
	err := reg.Load()
	if !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("err = %v, want ErrUnsupportedLanguage", err)
	}
}
