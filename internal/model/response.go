package model

import "fmt"

// Origin identifies which retrieval branch produced the answer
type Origin string

const (
	OriginCurated    Origin = "curated"    // Answered from the curated knowledge store
	OriginLiterature Origin = "literature" // Answered from PubMed abstracts
)

// VerdictResponse is the final structured output for a checked claim
type VerdictResponse struct {
	Claim          string   `json:"claim"`
	Verdict        Verdict  `json:"verdict"`
	Confidence     int      `json:"confidence"` // Always in [0,100]
	Explanation    string   `json:"explanation"`
	Consequence    string   `json:"consequence,omitempty"`    // Why the claim matters
	Recommendation string   `json:"recommendation,omitempty"` // What to do instead
	Sources        []string `json:"sources"`
	Origin         Origin   `json:"origin"`
	Model          string   `json:"model,omitempty"`     // LLM that produced the text
	Certainty      float64  `json:"certainty,omitempty"` // Similarity of curated match, if any
}

// ClampConfidence forces the confidence into [0,100]
func ClampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

// Validate checks the invariants every response must satisfy
func (r *VerdictResponse) Validate() error {
	if !r.Verdict.IsValid() {
		return fmt.Errorf("invalid verdict label: %q", r.Verdict)
	}
	if r.Confidence < 0 || r.Confidence > 100 {
		return fmt.Errorf("confidence %d out of range [0,100]", r.Confidence)
	}
	if r.Origin != OriginCurated && r.Origin != OriginLiterature {
		return fmt.Errorf("invalid origin: %q", r.Origin)
	}
	return nil
}
