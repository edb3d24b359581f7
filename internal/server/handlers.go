package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adetolu/medfact/internal/knowledge"
)

// verifyRequest is the body of POST /v1/verify
type verifyRequest struct {
	Claim string `json:"claim" binding:"required"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	count, err := s.knowledge.Count(c.Request.Context())
	status := "ok"
	if err != nil {
		status = "degraded"
		s.logger.Warn("knowledge store unreachable", "error", err)
		count = -1
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         status,
		"curated_claims": count,
		"provider":       s.provider,
	})
}

func (s *Server) handleVerify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:     "claim is required",
			RequestID: c.GetString("request_id"),
		})
		return
	}

	claim := strings.TrimSpace(req.Claim)
	if claim == "" {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:     "claim is required",
			RequestID: c.GetString("request_id"),
		})
		return
	}

	resp, err := s.verifier.Check(c.Request.Context(), claim)
	if err != nil {
		s.logger.Error("verification failed",
			"request_id", c.GetString("request_id"),
			"claim", req.Claim,
			"error", err)
		c.JSON(http.StatusBadGateway, errorResponse{
			Error:     "verification failed",
			RequestID: c.GetString("request_id"),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleListClaims(c *gin.Context) {
	category := c.Query("category")
	claims := knowledge.FilterByCategory(s.claims, category)

	c.JSON(http.StatusOK, gin.H{
		"count":  len(claims),
		"claims": claims,
	})
}
