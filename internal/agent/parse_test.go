package agent

import (
	"strings"
	"testing"

	"github.com/adetolu/medfact/internal/model"
)

const wellFormedOutput = `**Verdict:** FALSE

**Confidence:** 95%

**Explanation:**
Drinking hot water does not kill the malaria parasite. Malaria needs proper medicine from a clinic.

**Why This Matters:**
Delaying real treatment lets malaria get worse and can be life-threatening.

**What You Should Do Instead:**
Go to a clinic for a malaria test and take the full course of prescribed medicine.

**Trusted Sources:**
- WHO Malaria Fact Sheet
- NCDC Malaria Guidelines
`

func TestParseVerdictResponse_WellFormed(t *testing.T) {
	resp := parseVerdictResponse("hot water cures malaria", wellFormedOutput)

	if resp.Verdict != model.VerdictFalse {
		t.Errorf("Expected FALSE, got %s", resp.Verdict)
	}
	if resp.Confidence != 95 {
		t.Errorf("Expected confidence 95, got %d", resp.Confidence)
	}
	if !strings.Contains(resp.Explanation, "does not kill the malaria parasite") {
		t.Errorf("Unexpected explanation: %s", resp.Explanation)
	}
	if !strings.Contains(resp.Consequence, "life-threatening") {
		t.Errorf("Unexpected consequence: %s", resp.Consequence)
	}
	if !strings.Contains(resp.Recommendation, "malaria test") {
		t.Errorf("Unexpected recommendation: %s", resp.Recommendation)
	}
	if len(resp.Sources) != 2 || resp.Sources[0] != "WHO Malaria Fact Sheet" {
		t.Errorf("Unexpected sources: %v", resp.Sources)
	}
	if err := resp.Validate(); err != nil {
		t.Errorf("Parsed response failed validation: %v", err)
	}
}

func TestParseVerdictResponse_HeaderVariants(t *testing.T) {
	// Some models emit "**Verdict**:" or drop the bold markers entirely
	variants := []string{
		"**Verdict**: PARTIALLY TRUE\n**Confidence**: 60\nExplanation: Mixed evidence.",
		"Verdict: partially true\nConfidence: 60%\nExplanation: Mixed evidence.",
		"**Verdict:** Partly true\n**Confidence:** 60\n**Explanation:** Mixed evidence.",
	}

	for _, text := range variants {
		resp := parseVerdictResponse("claim", text)
		if resp.Verdict != model.VerdictPartiallyTrue {
			t.Errorf("Text %q: expected PARTIALLY TRUE, got %s", text, resp.Verdict)
		}
		if resp.Confidence != 60 {
			t.Errorf("Text %q: expected confidence 60, got %d", text, resp.Confidence)
		}
	}
}

func TestParseVerdictResponse_Unstructured(t *testing.T) {
	text := "I am not sure about this claim, the evidence is conflicting."
	resp := parseVerdictResponse("claim", text)

	if resp.Verdict != model.VerdictUnclear {
		t.Errorf("Expected UNCLEAR for unstructured output, got %s", resp.Verdict)
	}
	if resp.Explanation != text {
		t.Errorf("Expected raw text as explanation, got %q", resp.Explanation)
	}
	if err := resp.Validate(); err != nil {
		t.Errorf("Fallback response failed validation: %v", err)
	}
}

func TestParseVerdictResponse_UnknownVerdictLabel(t *testing.T) {
	resp := parseVerdictResponse("claim", "**Verdict:** MOSTLY ACCURATE\n**Confidence:** 70")
	if resp.Verdict != model.VerdictUnclear {
		t.Errorf("Expected UNCLEAR for unknown label, got %s", resp.Verdict)
	}
}

func TestParseConfidence(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{"95%", 95},
		{"95", 95},
		{"around 80 out of 100", 80},
		{"150", 100}, // Clamped
		{"-10", 0},   // Clamped
		{"no number here", 30},
		{"", 30},
	}

	for _, tt := range tests {
		if got := parseConfidence(tt.body, 30); got != tt.want {
			t.Errorf("parseConfidence(%q) = %d, want %d", tt.body, got, tt.want)
		}
	}
}

func TestParseSources(t *testing.T) {
	body := "- WHO Fact Sheet\n* NCDC Guidelines\n\n  • Local Journal (2020)"
	sources := parseSources(body)

	want := []string{"WHO Fact Sheet", "NCDC Guidelines", "Local Journal (2020)"}
	if len(sources) != len(want) {
		t.Fatalf("Expected %d sources, got %d: %v", len(want), len(sources), sources)
	}
	for i := range want {
		if sources[i] != want[i] {
			t.Errorf("Source %d = %q, want %q", i, sources[i], want[i])
		}
	}
}

func TestSplitSections_PreambleDropped(t *testing.T) {
	text := "Sure, here is my assessment.\n\n**Verdict:** TRUE\n**Confidence:** 85"
	sections := splitSections(text)

	if v := sections["Verdict:"]; !strings.HasPrefix(v, "TRUE") {
		t.Errorf("Unexpected verdict section: %q", v)
	}
	if _, ok := sections["Explanation:"]; ok {
		t.Error("Did not expect an explanation section")
	}
}
