package agent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/adetolu/medfact/internal/model"
)

// Section headers the response format mandates. Models occasionally vary the
// markdown emphasis, so matching is done on the bare header text.
var sectionHeaders = []string{
	"Verdict:",
	"Confidence:",
	"Explanation:",
	"Why This Matters:",
	"What You Should Do Instead:",
	"Trusted Sources:",
}

var headerPattern = regexp.MustCompile(`(?mi)^\s*\**\s*(Verdict|Confidence|Explanation|Why This Matters|What You Should Do Instead|Trusted Sources)\s*:?\s*\**\s*:?\s*`)

var confidencePattern = regexp.MustCompile(`-?\d+`)

// splitSections carves the model output into header -> body chunks. Text
// before the first recognized header is dropped.
func splitSections(text string) map[string]string {
	sections := make(map[string]string)

	locs := headerPattern.FindAllStringSubmatchIndex(text, -1)
	for i, loc := range locs {
		header := canonicalHeader(text[loc[2]:loc[3]])
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := strings.TrimSpace(text[loc[1]:end])
		if body != "" {
			sections[header] = body
		}
	}

	return sections
}

func canonicalHeader(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	for _, h := range sectionHeaders {
		if strings.ToLower(strings.TrimSuffix(h, ":")) == lower {
			return h
		}
	}
	return raw + ":"
}

// parseConfidence extracts the first integer from a confidence section and
// clamps it. Missing or unparseable confidence maps to the floor value.
func parseConfidence(body string, fallback int) int {
	match := confidencePattern.FindString(body)
	if match == "" {
		return fallback
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return fallback
	}
	return model.ClampConfidence(n)
}

// parseSources splits a Trusted Sources section into individual citations
func parseSources(body string) []string {
	var sources []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		line = strings.TrimSpace(line)
		if line != "" {
			sources = append(sources, line)
		}
	}
	return sources
}

// parseVerdictResponse turns raw model output into a structured response.
// Anything the model failed to produce degrades safely: missing verdict reads
// as UNCLEAR, missing confidence as the low-confidence floor, missing prose as
// the whole raw text.
func parseVerdictResponse(claim, text string) *model.VerdictResponse {
	sections := splitSections(text)

	resp := &model.VerdictResponse{
		Claim:      claim,
		Verdict:    model.VerdictUnclear,
		Confidence: 30,
		Origin:     model.OriginLiterature,
	}

	if v, ok := sections["Verdict:"]; ok {
		// The verdict body may run into following prose; only the first line counts
		firstLine := strings.SplitN(v, "\n", 2)[0]
		resp.Verdict = model.ParseVerdict(firstLine)
	}
	if c, ok := sections["Confidence:"]; ok {
		resp.Confidence = parseConfidence(c, resp.Confidence)
	}
	if e, ok := sections["Explanation:"]; ok {
		resp.Explanation = e
	}
	if w, ok := sections["Why This Matters:"]; ok {
		resp.Consequence = w
	}
	if r, ok := sections["What You Should Do Instead:"]; ok {
		resp.Recommendation = r
	}
	if s, ok := sections["Trusted Sources:"]; ok {
		resp.Sources = parseSources(s)
	}

	if resp.Explanation == "" {
		// Unstructured output still carries the answer; keep it readable
		resp.Explanation = strings.TrimSpace(text)
	}

	return resp
}
