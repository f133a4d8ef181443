package services

import (
	"reflect"
	"testing"
)

func TestParseSkillList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "Go", []string{"Go"}},
		{"multiple", "Go,Rust,Python", []string{"Go", "Rust", "Python"}},
		{"whitespace trimmed", "  Go , Rust  ", []string{"Go", "Rust"}},
		{"empty tokens dropped", "Go,,Rust,", []string{"Go", "Rust"}},
		{"only commas", ",,,", nil},
		{"dedupe keeps first casing", "Go,go,GO", []string{"Go"}},
		{"dedupe preserves order", "rust,Go,RUST,python", []string{"rust", "Go", "python"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSkillList(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSkillList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeSkillSet(t *testing.T) {
	set := NormalizeSkillSet([]string{"Go", "RUST", "go"})
	if len(set) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(set))
	}
	for _, key := range []string{"go", "rust"} {
		if _, ok := set[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
}
