package model

import "testing"

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		input, want int
	}{
		{-5, 0},
		{0, 0},
		{50, 50},
		{100, 100},
		{150, 100},
	}

	for _, tt := range tests {
		if got := ClampConfidence(tt.input); got != tt.want {
			t.Errorf("ClampConfidence(%d) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestVerdictResponse_Validate(t *testing.T) {
	valid := VerdictResponse{
		Claim:      "test",
		Verdict:    VerdictFalse,
		Confidence: 95,
		Origin:     OriginCurated,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid response rejected: %v", err)
	}

	badVerdict := valid
	badVerdict.Verdict = "MAYBE"
	if err := badVerdict.Validate(); err == nil {
		t.Error("expected error for invalid verdict")
	}

	badConfidence := valid
	badConfidence.Confidence = 120
	if err := badConfidence.Validate(); err == nil {
		t.Error("expected error for out-of-range confidence")
	}

	badOrigin := valid
	badOrigin.Origin = "oracle"
	if err := badOrigin.Validate(); err == nil {
		t.Error("expected error for unknown origin")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}

	bad := DefaultConfig()
	bad.Search.Threshold = 1.5
	if err := bad.Validate(); err == nil {
		t.Error("expected error for threshold above 1")
	}

	bad = DefaultConfig()
	bad.Search.TopK = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero top_k")
	}

	bad = DefaultConfig()
	bad.PubMed.RequestsPerSecond = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero request rate")
	}
}
