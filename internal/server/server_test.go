package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adetolu/medfact/internal/model"
)

type stubVerifier struct {
	resp *model.VerdictResponse
	err  error
}

func (v *stubVerifier) Check(_ context.Context, claim string) (*model.VerdictResponse, error) {
	if v.err != nil {
		return nil, v.err
	}
	resp := *v.resp
	resp.Claim = claim
	return &resp, nil
}

type stubKnowledge struct {
	count int
	err   error
}

func (k *stubKnowledge) Count(_ context.Context) (int, error) {
	return k.count, k.err
}

func testClaims() []model.CuratedClaim {
	return []model.CuratedClaim{
		{Claim: "Hot water cures malaria", Verdict: model.VerdictFalse, Confidence: 95, Category: "malaria, treatment", Language: "en"},
		{Claim: "Mosquito nets prevent malaria", Verdict: model.VerdictTrue, Confidence: 98, Category: "malaria, prevention", Language: "en"},
		{Claim: "Bitter kola cures ebola", Verdict: model.VerdictFalse, Confidence: 97, Category: "ebola", Language: "en"},
	}
}

func newTestServer(verifier Verifier, knowledge Knowledge) *Server {
	return New(verifier, knowledge, testClaims(), "openai", model.ServerConfig{
		Addr:         ":0",
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}, nil)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&stubVerifier{}, &stubKnowledge{count: 15})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(15), body["curated_claims"])
	assert.Equal(t, "openai", body["provider"])
}

func TestHealth_StoreDown(t *testing.T) {
	srv := newTestServer(&stubVerifier{}, &stubKnowledge{err: fmt.Errorf("connect refused")})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body["status"])
}

func TestVerify(t *testing.T) {
	verifier := &stubVerifier{resp: &model.VerdictResponse{
		Verdict:     model.VerdictFalse,
		Confidence:  95,
		Explanation: "Malaria needs medical treatment.",
		Origin:      model.OriginCurated,
		Certainty:   0.92,
	}}
	srv := newTestServer(verifier, &stubKnowledge{count: 15})

	payload, _ := json.Marshal(map[string]string{"claim": "hot water cures malaria"})
	req := httptest.NewRequest(http.MethodPost, "/v1/verify", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.VerdictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "hot water cures malaria", resp.Claim)
	assert.Equal(t, model.VerdictFalse, resp.Verdict)
	assert.Equal(t, 95, resp.Confidence)
	assert.Equal(t, model.OriginCurated, resp.Origin)

	// Every response carries a request id header
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestVerify_MissingClaim(t *testing.T) {
	srv := newTestServer(&stubVerifier{}, &stubKnowledge{})

	req := httptest.NewRequest(http.MethodPost, "/v1/verify", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerify_BlankClaim(t *testing.T) {
	// A claim of only whitespace is an input error, not a pipeline failure:
	// it must be rejected with 400 before the verifier is invoked.
	verifier := &stubVerifier{err: fmt.Errorf("verifier must not be called")}
	srv := newTestServer(verifier, &stubKnowledge{})

	payload, _ := json.Marshal(map[string]string{"claim": "   \n\t"})
	req := httptest.NewRequest(http.MethodPost, "/v1/verify", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "claim is required", resp.Error)
}

func TestVerify_AgentError(t *testing.T) {
	srv := newTestServer(&stubVerifier{err: fmt.Errorf("model unavailable")}, &stubKnowledge{})

	payload, _ := json.Marshal(map[string]string{"claim": "anything"})
	req := httptest.NewRequest(http.MethodPost, "/v1/verify", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "verification failed", resp.Error)
	assert.NotEmpty(t, resp.RequestID)
}

func TestListClaims(t *testing.T) {
	srv := newTestServer(&stubVerifier{}, &stubKnowledge{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/claims", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count  int                  `json:"count"`
		Claims []model.CuratedClaim `json:"claims"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Count)
}

func TestListClaims_CategoryFilter(t *testing.T) {
	srv := newTestServer(&stubVerifier{}, &stubKnowledge{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/claims?category=malaria", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count  int                  `json:"count"`
		Claims []model.CuratedClaim `json:"claims"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	for _, c := range body.Claims {
		assert.Contains(t, c.Category, "malaria")
	}
}

func TestRequestID_Propagated(t *testing.T) {
	srv := newTestServer(&stubVerifier{}, &stubKnowledge{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "caller-supplied-id")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "caller-supplied-id", rec.Header().Get("X-Request-ID"))
}
