package api

import (
	"net/http"

	"nexus-engine/internal/dashboard"
	"nexus-engine/internal/models"

	"github.com/gin-gonic/gin"
)

type LeadHandler struct {
	Orch *dashboard.Orchestrator
}

func NewLeadHandler(orch *dashboard.Orchestrator) *LeadHandler {
	return &LeadHandler{Orch: orch}
}

func (h *LeadHandler) GetLeads(c *gin.Context) {
	c.JSON(http.StatusOK, h.Orch.Leads())
}

type CreateLeadRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lead, err := h.Orch.AddLead(req.Name, req.Phone, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lead)
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := models.ParseCallStatus(req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	lead, err := h.Orch.UpdateLeadStatus(c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// CallLead opens a scripted call; the line is spoken in the background.
func (h *LeadHandler) CallLead(c *gin.Context) {
	entry, err := h.Orch.CallLead(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"view": h.Orch.CurrentView(), "entry": entry})
}
