package model

import "strings"

// Verdict is the label assigned to a health claim
type Verdict string

const (
	VerdictTrue          Verdict = "TRUE"           // Claim is supported by evidence
	VerdictFalse         Verdict = "FALSE"          // Claim is contradicted by evidence
	VerdictPartiallyTrue Verdict = "PARTIALLY TRUE" // Claim mixes accurate and inaccurate parts
	VerdictUnclear       Verdict = "UNCLEAR"        // Evidence is missing or conflicting
)

// Verdicts lists every valid verdict label
var Verdicts = []Verdict{VerdictTrue, VerdictFalse, VerdictPartiallyTrue, VerdictUnclear}

// ParseVerdict normalizes free text into one of the four verdict labels.
// Unrecognized input maps to UNCLEAR.
func ParseVerdict(s string) Verdict {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.Trim(normalized, ".!*[] ")

	switch {
	case strings.HasPrefix(normalized, "PARTIALLY"), strings.HasPrefix(normalized, "PARTLY"):
		return VerdictPartiallyTrue
	case strings.HasPrefix(normalized, "TRUE"):
		return VerdictTrue
	case strings.HasPrefix(normalized, "FALSE"):
		return VerdictFalse
	case strings.HasPrefix(normalized, "UNCLEAR"), strings.HasPrefix(normalized, "UNKNOWN"):
		return VerdictUnclear
	default:
		return VerdictUnclear
	}
}

// IsValid reports whether v is one of the four verdict labels
func (v Verdict) IsValid() bool {
	for _, known := range Verdicts {
		if v == known {
			return true
		}
	}
	return false
}

// CuratedClaim is a manually vetted claim/verdict record.
// Records are loaded from the embedded dataset and are read-only at runtime.
type CuratedClaim struct {
	Claim       string   `json:"claim" yaml:"claim"`             // The claim text itself
	Verdict     Verdict  `json:"verdict" yaml:"verdict"`         // One of the four labels
	Confidence  int      `json:"confidence" yaml:"confidence"`   // 0-100
	Explanation string   `json:"explanation" yaml:"explanation"` // Plain-language explanation
	Sources     []string `json:"sources" yaml:"sources"`         // Citations backing the verdict
	Category    string   `json:"category" yaml:"category"`       // Comma-separated topic tags
	Language    string   `json:"language" yaml:"language"`       // Language tag, defaults to "en"
}

// CuratedMatch is a curated claim returned by a similarity search
type CuratedMatch struct {
	CuratedClaim
	Certainty float64 `json:"certainty"` // Vector similarity in [0,1]
}

// Authoritative reports whether the match meets the similarity threshold
func (m CuratedMatch) Authoritative(threshold float64) bool {
	return m.Certainty >= threshold
}
