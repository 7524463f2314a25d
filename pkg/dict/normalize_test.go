package dict

import "testing"

func TestNormalizeAccents(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"fenêtre", "fenetre"},
		{"là", "la"},
		{"ÀÈÌÒÙ", "AEIOU"},
		{"Ïsch", "Isch"},
		{"’s Hüs", "'s Hüs"},
		{"‘gell’", "'gell'"},
		{"café", "café"}, // é exists in Luxembourgish
		{"Noël", "Noël"},
		{"Hüs", "Hüs"},
		{"", ""},
		{"simple", "simple"},
	}
	for _, tt := range tests {
		got := NormalizeAccents(tt.input)
		if got != tt.want {
			t.Errorf("NormalizeAccents(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeAccents_Idempotent(t *testing.T) {
	for _, input := range []string{"fenêtre", "ÀÁÂ àáâ", "’’‘", "Mìr sìn dò", "café", "Ëlsass"} {
		once := NormalizeAccents(input)
		twice := NormalizeAccents(once)
		if once != twice {
			t.Errorf("NormalizeAccents not idempotent on %q: %q then %q", input, once, twice)
		}
	}
}

func TestAccentFolder(t *testing.T) {
	tests := []struct {
		lang  Language
		input string
		want  string
	}{
		{German, "Mìr sìn dò", "Mir sin do"},
		{Luxembourgish, "Mìr sìn dò", "Mir sin do"},
		{German, "é ë è ê", "é ë e e"},
		{Luxembourgish, "é ë è ê", "é ë e e"},
		{"xx", "dò", "do"}, // unknown language falls back to the base set
	}
	for _, tt := range tests {
		got := AccentFolder(tt.lang)(tt.input)
		if got != tt.want {
			t.Errorf("AccentFolder(%q)(%q) = %q, want %q", tt.lang, tt.input, got, tt.want)
		}
	}
}

func TestLookupKey(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Schaffe", "schaffe"},
		{"HÜS", "hüs"},
		{"dò", "dò"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := LookupKey(tt.input); got != tt.want {
			t.Errorf("LookupKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeNone(t *testing.T) {
	for _, input := range []string{"Frai", "dò", ""} {
		if got := NormalizeNone(input); got != input {
			t.Errorf("NormalizeNone(%q) = %q, want unchanged", input, got)
		}
	}
}
