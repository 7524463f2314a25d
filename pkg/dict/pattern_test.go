package dict

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const ruleFixture = "e\tä\t12\n" +
	"ee\tä\t5\n" +
	"ie\tä\t30\n" +
	"uu\tu\t11\n" +
	"e\tä\t40\n" +
	"broken line\n" +
	"x\ty\tabc\n" +
	"\n" +
	"frai\tfrei\t15\n"

func TestParseRuleTable(t *testing.T) {
	table, err := ParseRuleTable(strings.NewReader(ruleFixture), RuleOptions{})
	if err != nil {
		t.Fatalf("ParseRuleTable: %v", err)
	}

	if table.Len() != 3 {
		t.Fatalf("targets = %d, want 3", table.Len())
	}

	var targets []string
	for _, r := range table.Rules() {
		targets = append(targets, r.Target)
	}
	if want := []string{"ä", "u", "frei"}; !reflect.DeepEqual(targets, want) {
		t.Errorf("target order = %v, want %v", targets, want)
	}

	tests := []struct {
		target string
		want   []string
	}{
		{"ä", []string{"(e|ie)"}},
		{"u", []string{"(uu)"}},
		{"frei", []string{"(frai)"}},
	}
	for _, tt := range tests {
		got, ok := table.Patterns(tt.target)
		if !ok {
			t.Errorf("Patterns(%q) missing", tt.target)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Patterns(%q) = %v, want %v", tt.target, got, tt.want)
		}
	}

	if _, ok := table.Patterns("y"); ok {
		t.Error("malformed count line should not produce a rule")
	}
}

func TestParseRuleTable_Threshold(t *testing.T) {
	input := "e\tä\t12\ne\tä\t5\nee\tä\t9\nie\tä\t10\n"
	table, err := ParseRuleTable(strings.NewReader(input), RuleOptions{})
	if err != nil {
		t.Fatalf("ParseRuleTable: %v", err)
	}
	got, _ := table.Patterns("ä")
	if want := []string{"(e|ie)"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Patterns(ä) = %v, want %v", got, want)
	}

	// Only the row below the threshold exists: no rule at all.
	table, err = ParseRuleTable(strings.NewReader("ee\tä\t9\n"), RuleOptions{})
	if err != nil {
		t.Fatalf("ParseRuleTable: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("Len = %d, want 0", table.Len())
	}
}

func TestParseRuleTable_CustomMinCount(t *testing.T) {
	table, err := ParseRuleTable(strings.NewReader("ee\tä\t5\ne\tä\t2\n"), RuleOptions{MinCount: 5})
	if err != nil {
		t.Fatalf("ParseRuleTable: %v", err)
	}
	got, _ := table.Patterns("ä")
	if want := []string{"(ee)"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Patterns(ä) = %v, want %v", got, want)
	}
}

func TestParseRuleTable_InvalidPatternSkipped(t *testing.T) {
	input := "a(\tb\t20\nuu\tu\t20\n"
	table, err := ParseRuleTable(strings.NewReader(input), RuleOptions{})
	if err != nil {
		t.Fatalf("ParseRuleTable: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("Len = %d, want 1", table.Len())
	}
	if table.Rules()[0].Target != "u" {
		t.Errorf("remaining rule = %q, want u", table.Rules()[0].Target)
	}
}

func TestRuleMatchers(t *testing.T) {
	table, err := ParseRuleTable(strings.NewReader("frai\tfrei\t15\n"), RuleOptions{})
	if err != nil {
		t.Fatalf("ParseRuleTable: %v", err)
	}
	re := table.Rules()[0].Matchers()[0]
	if !re.MatchString("frai") {
		t.Error("pattern should match frai")
	}
	if re.MatchString("Frai") {
		t.Error("case-sensitive pattern should not match Frai")
	}

	folded, err := ParseRuleTable(strings.NewReader("frai\tfrei\t15\n"), RuleOptions{FoldCase: true})
	if err != nil {
		t.Fatalf("ParseRuleTable: %v", err)
	}
	if !folded.FoldCase() {
		t.Error("FoldCase() = false, want true")
	}
	if !folded.Rules()[0].Matchers()[0].MatchString("Frai") {
		t.Error("case-folded pattern should match Frai")
	}
	// The stored pattern text does not carry the flag.
	got, _ := folded.Patterns("frei")
	if got[0] != "(frai)" {
		t.Errorf("pattern = %q, want (frai)", got[0])
	}
}

func TestLoadRuleTable_MissingFile(t *testing.T) {
	table, err := LoadRuleTable(filepath.Join(t.TempDir(), "missing.txt"), RuleOptions{})
	if err != nil {
		t.Fatalf("LoadRuleTable on missing file: %v", err)
	}
	if table == nil || table.Len() != 0 {
		t.Fatalf("expected empty table, got %v", table)
	}
}

func TestLoadRuleTable_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "als_deu_rules.txt")
	if err := os.WriteFile(path, []byte(ruleFixture), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := LoadRuleTable(path, RuleOptions{})
	if err != nil {
		t.Fatalf("LoadRuleTable: %v", err)
	}
	if table.Len() != 3 {
		t.Errorf("Len = %d, want 3", table.Len())
	}
}

func TestNilRuleTable(t *testing.T) {
	var table *RuleTable
	if table.Len() != 0 || table.Rules() != nil || table.FoldCase() {
		t.Error("nil table should behave as empty")
	}
	if _, ok := table.Patterns("x"); ok {
		t.Error("nil table Patterns should miss")
	}
}
