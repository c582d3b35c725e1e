package api

import (
	"net/http"

	"nexus-engine/internal/dashboard"

	"github.com/gin-gonic/gin"
)

type FunnelHandler struct {
	Orch *dashboard.Orchestrator
}

func NewFunnelHandler(orch *dashboard.Orchestrator) *FunnelHandler {
	return &FunnelHandler{Orch: orch}
}

func (h *FunnelHandler) GetFunnels(c *gin.Context) {
	c.JSON(http.StatusOK, h.Orch.Funnels())
}

type GenerateFunnelRequest struct {
	Niche string `json:"niche"`
}

// GenerateFunnel starts a generation for the given niche, or the stored one
// when the body names none. Only one generation runs at a time.
func (h *FunnelHandler) GenerateFunnel(c *gin.Context) {
	var req GenerateFunnelRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if err := h.Orch.GenerateFunnel(c.Request.Context(), req.Niche); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "Funnel generation started", "niche": h.Orch.FunnelNiche()})
}

func (h *FunnelHandler) SetNiche(c *gin.Context) {
	var req GenerateFunnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Orch.SetFunnelNiche(req.Niche)
	c.JSON(http.StatusOK, gin.H{"niche": req.Niche})
}

// PreviewFunnel serves the generated page as-is.
func (h *FunnelHandler) PreviewFunnel(c *gin.Context) {
	f, err := h.Orch.Funnel(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(f.HTML))
}

func (h *FunnelHandler) SimulateConversion(c *gin.Context) {
	lead, err := h.Orch.SimulateConversion(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Lead simulated! Check Lead Ops.", "lead": lead})
}
