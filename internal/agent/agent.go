package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/adetolu/medfact/internal/llm"
	"github.com/adetolu/medfact/internal/model"
)

// KnowledgeSearcher retrieves curated claims by similarity
type KnowledgeSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]model.CuratedMatch, error)
}

// LiteratureSearcher retrieves peer-reviewed abstracts for a query
type LiteratureSearcher interface {
	Search(ctx context.Context, query string) ([]model.Article, error)
}

// Agent answers health claims curated-first: a strong curated match decides
// the verdict outright, anything weaker falls through to a literature search
// before the model is asked to judge.
type Agent struct {
	knowledge  KnowledgeSearcher
	literature LiteratureSearcher
	provider   llm.Provider
	cfg        model.SearchConfig
	logger     *slog.Logger
}

// New creates an agent. The literature searcher may be nil, in which case
// claims without a curated match are answered from the model alone.
func New(knowledge KnowledgeSearcher, literature LiteratureSearcher, provider llm.Provider, cfg model.SearchConfig, logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{
		knowledge:  knowledge,
		literature: literature,
		provider:   provider,
		cfg:        cfg,
		logger:     logger,
	}
}

// Check verifies a single health claim and returns the structured verdict
func (a *Agent) Check(ctx context.Context, claim string) (*model.VerdictResponse, error) {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return nil, fmt.Errorf("claim is empty")
	}

	matches, err := a.knowledge.Search(ctx, claim, a.cfg.TopK)
	if err != nil {
		return nil, fmt.Errorf("curated search: %w", err)
	}

	if len(matches) > 0 && matches[0].Authoritative(a.cfg.Threshold) {
		a.logger.Debug("curated match is authoritative",
			"claim", claim,
			"certainty", matches[0].Certainty,
			"verdict", matches[0].Verdict)
		return a.answerFromCurated(ctx, claim, matches[0]), nil
	}

	a.logger.Debug("no authoritative curated match, searching literature",
		"claim", claim,
		"candidates", len(matches))
	return a.answerFromLiterature(ctx, claim)
}

// answerFromCurated builds the response around the vetted record. Verdict,
// confidence and sources are copied from the record untouched; the model only
// phrases the prose, and a model failure falls back to the record's own
// explanation rather than failing the check.
func (a *Agent) answerFromCurated(ctx context.Context, claim string, match model.CuratedMatch) *model.VerdictResponse {
	resp := &model.VerdictResponse{
		Claim:       claim,
		Verdict:     match.Verdict,
		Confidence:  model.ClampConfidence(match.Confidence),
		Explanation: match.Explanation,
		Sources:     match.Sources,
		Origin:      model.OriginCurated,
		Certainty:   match.Certainty,
	}

	completion, err := a.provider.Complete(ctx, llm.CompletionRequest{
		System: systemPrompt,
		Prompt: curatedPrompt(claim, match),
	})
	if err != nil {
		a.logger.Warn("model unavailable for curated write-up, using record explanation",
			"claim", claim, "error", err)
		return resp
	}

	sections := splitSections(completion.Text)
	if e, ok := sections["Explanation:"]; ok {
		resp.Explanation = e
	}
	if w, ok := sections["Why This Matters:"]; ok {
		resp.Consequence = w
	}
	if r, ok := sections["What You Should Do Instead:"]; ok {
		resp.Recommendation = r
	}
	resp.Model = completion.Model

	return resp
}

// answerFromLiterature searches PubMed and has the model judge the claim
// against whatever abstracts came back. Here the model does decide the
// verdict, so a model failure fails the check.
func (a *Agent) answerFromLiterature(ctx context.Context, claim string) (*model.VerdictResponse, error) {
	var articles []model.Article
	if a.literature != nil {
		var err error
		articles, err = a.literature.Search(ctx, claim)
		if err != nil {
			// Degraded but answerable: the model is told evidence is lacking
			a.logger.Warn("literature search failed, continuing without abstracts",
				"claim", claim, "error", err)
			articles = nil
		}
	}

	completion, err := a.provider.Complete(ctx, llm.CompletionRequest{
		System: systemPrompt,
		Prompt: literaturePrompt(claim, articles),
	})
	if err != nil {
		return nil, fmt.Errorf("model completion: %w", err)
	}

	resp := parseVerdictResponse(claim, completion.Text)
	resp.Model = completion.Model

	if len(resp.Sources) == 0 && len(articles) > 0 {
		for _, article := range articles {
			resp.Sources = append(resp.Sources, article.Citation())
		}
	}

	return resp, nil
}
