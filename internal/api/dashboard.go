package api

import (
	"net/http"

	"nexus-engine/internal/dashboard"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	Orch *dashboard.Orchestrator
}

func NewDashboardHandler(orch *dashboard.Orchestrator) *DashboardHandler {
	return &DashboardHandler{Orch: orch}
}

func (h *DashboardHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.Orch.State())
}

type SetViewRequest struct {
	View string `json:"view" binding:"required"`
}

func (h *DashboardHandler) SetView(c *gin.Context) {
	var req SetViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v, err := dashboard.ParseView(req.View)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Orch.SetView(v); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": v, "title": v.Title()})
}

// GetViews lists the panels in sidebar order with their titles.
func (h *DashboardHandler) GetViews(c *gin.Context) {
	views := make([]gin.H, 0, len(dashboard.Views))
	for _, v := range dashboard.Views {
		views = append(views, gin.H{"view": v, "title": v.Title()})
	}
	c.JSON(http.StatusOK, gin.H{"views": views, "current": h.Orch.CurrentView()})
}

type SimulationRequest struct {
	Text string `json:"text"`
}

// SendMessage queues a simulation turn. The reply arrives over the websocket
// and in GET /api/simulation.
func (h *DashboardHandler) SendMessage(c *gin.Context) {
	var req SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Orch.SendSimulation(c.Request.Context(), req.Text); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "Message queued"})
}

func (h *DashboardHandler) GetSimulation(c *gin.Context) {
	st := h.Orch.State()
	c.JSON(http.StatusOK, gin.H{
		"transcript": st.Transcript,
		"generating": st.Generating,
	})
}

func (h *DashboardHandler) ClearSimulation(c *gin.Context) {
	h.Orch.ClearTranscript()
	c.JSON(http.StatusOK, gin.H{"status": "Transcript cleared"})
}

type SpeechRequest struct {
	Text string `json:"text"`
}

func (h *DashboardHandler) Speak(c *gin.Context) {
	var req SpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Orch.Speak(c.Request.Context(), req.Text); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "Speech queued"})
}

func (h *DashboardHandler) GetAnalytics(c *gin.Context) {
	a, ok := h.Orch.Analytics()
	if !ok {
		respondError(c, dashboard.ErrNoActiveCampaign)
		return
	}
	c.JSON(http.StatusOK, a)
}
