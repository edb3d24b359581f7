package agent

import (
	"fmt"
	"strings"

	"github.com/adetolu/medfact/internal/model"
)

// systemPrompt defines the assistant persona and the sectioned output contract
// every provider response must follow.
const systemPrompt = `You are a health misinformation detection system designed for older adults in Nigeria.

Your job is to evaluate health claims and provide clear, accurate, compassionate information.

RESPONSE FORMAT - YOU MUST ALWAYS PROVIDE:

**Verdict:** [TRUE / FALSE / PARTIALLY TRUE / UNCLEAR]

**Confidence:** [0-100%]
- 90-100%: Very confident, strong evidence
- 70-89%: Confident, good evidence
- 50-69%: Moderate confidence, some uncertainty
- Below 50%: Low confidence, unclear or conflicting evidence

**Explanation:**
[Provide a clear, simple explanation that an older adult can understand. Use everyday language, avoid medical jargon. If you must use medical terms, explain them simply.]

**Why This Matters:**
[Explain the real-world consequences - what could happen if someone believes this myth]

**What You Should Do Instead:**
[Provide practical, actionable advice]

**Trusted Sources:**
- [Source 1 with specific citation]
- [Source 2 with specific citation]
- [Source 3 if available]

IMPORTANT GUIDELINES:
- Be compassionate and respectful. Many people believe these myths because they were told by trusted family or community members.
- Never shame or mock people for believing myths
- Acknowledge cultural beliefs while gently correcting dangerous misinformation
- If a traditional practice is harmless but ineffective, acknowledge it while explaining what actually works
- For serious conditions (HIV, malaria, typhoid), be very clear about the need for medical treatment
- Always cite specific, authoritative sources (WHO, NCDC, peer-reviewed journals)
- If you're uncertain, say so. Don't guess about medical facts.
- For emergency situations (chest pain, severe bleeding, difficulty breathing), immediately advise seeking emergency medical care

SPECIAL CONSIDERATIONS FOR NIGERIAN CONTEXT:
- Reference Nigerian health authorities (NCDC, Federal Ministry of Health, NACA)
- Consider traditional practices that are harmless vs. those that are dangerous
- Be aware of common Nigerian health challenges (malaria, typhoid, hypertension)
- Respect local context while prioritizing evidence-based medicine`

// curatedPrompt asks the model to phrase a write-up for an already decided
// verdict. The verdict, confidence and sources come verbatim from the record,
// so the model is only trusted with the prose.
func curatedPrompt(claim string, match model.CuratedMatch) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A user asked about this health claim:\n\n%q\n\n", claim)
	b.WriteString("Our curated knowledge base has a vetted entry for this claim. The verdict is already decided; do NOT change it.\n\n")
	fmt.Fprintf(&b, "--- Curated Knowledge Entry ---\n")
	fmt.Fprintf(&b, "Claim: %s\n", match.Claim)
	fmt.Fprintf(&b, "Verdict: %s\n", match.Verdict)
	fmt.Fprintf(&b, "Confidence: %d\n", match.Confidence)
	fmt.Fprintf(&b, "Explanation: %s\n", match.Explanation)
	if match.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", match.Category)
	}
	if len(match.Sources) > 0 {
		fmt.Fprintf(&b, "Sources: %s\n", strings.Join(match.Sources, "; "))
	}
	b.WriteString("\nUsing ONLY this entry, write the **Explanation:**, **Why This Matters:** and **What You Should Do Instead:** sections of the response format. Keep the language simple and compassionate. Do not invent additional sources.")

	return b.String()
}

// literaturePrompt asks the model for a full verdict grounded in PubMed
// abstracts. With no abstracts the model is told evidence is lacking, which
// steers it toward an UNCLEAR verdict rather than a guess.
func literaturePrompt(claim string, articles []model.Article) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Evaluate this health claim:\n\n%q\n\n", claim)

	if len(articles) == 0 {
		b.WriteString("No matching entry exists in the curated database and a PubMed search returned no relevant research. ")
		b.WriteString("Evidence is lacking; say so explicitly and lean toward an UNCLEAR verdict with low confidence unless the claim is common medical knowledge.\n")
		return b.String()
	}

	b.WriteString("No matching entry exists in the curated database. Base your verdict on the peer-reviewed research below.\n\n")
	for i, a := range articles {
		fmt.Fprintf(&b, "--- PubMed Result %d ---\n", i+1)
		fmt.Fprintf(&b, "Title: %s\n", a.Title)
		fmt.Fprintf(&b, "Authors: %s\n", a.Authors)
		fmt.Fprintf(&b, "Journal: %s (%s)\n", a.Journal, a.Year)
		fmt.Fprintf(&b, "PMID: %s\n", a.PMID)
		fmt.Fprintf(&b, "URL: %s\n", a.URL)
		fmt.Fprintf(&b, "Abstract: %s\n\n", a.Abstract)
	}
	b.WriteString("Cite these papers in the **Trusted Sources:** section using their PMID and URL. Do not cite papers that are not listed above.")

	return b.String()
}
