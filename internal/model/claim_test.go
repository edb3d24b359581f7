package model

import "testing"

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		input string
		want  Verdict
	}{
		{"TRUE", VerdictTrue},
		{"true", VerdictTrue},
		{"  True.  ", VerdictTrue},
		{"TRUE - the claim holds", VerdictTrue},
		{"FALSE", VerdictFalse},
		{"false!", VerdictFalse},
		{"PARTIALLY TRUE", VerdictPartiallyTrue},
		{"partially true", VerdictPartiallyTrue},
		{"Partly true", VerdictPartiallyTrue},
		{"UNCLEAR", VerdictUnclear},
		{"unknown", VerdictUnclear},
		{"**FALSE**", VerdictFalse},
		{"[TRUE]", VerdictTrue},
		{"definitely maybe", VerdictUnclear},
		{"", VerdictUnclear},
	}

	for _, tt := range tests {
		if got := ParseVerdict(tt.input); got != tt.want {
			t.Errorf("ParseVerdict(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestVerdict_IsValid(t *testing.T) {
	for _, v := range Verdicts {
		if !v.IsValid() {
			t.Errorf("%q should be valid", v)
		}
	}
	if Verdict("MAYBE").IsValid() {
		t.Error("MAYBE should not be valid")
	}
}

func TestCuratedMatch_Authoritative(t *testing.T) {
	m := CuratedMatch{Certainty: 0.75}
	if !m.Authoritative(0.75) {
		t.Error("certainty equal to threshold must be authoritative")
	}
	if m.Authoritative(0.76) {
		t.Error("certainty below threshold must not be authoritative")
	}
}
