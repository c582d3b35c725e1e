package api

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups everything mounted under /api.
type Handlers struct {
	Dashboard *DashboardHandler
	Campaigns *CampaignHandler
	Funnels   *FunnelHandler
	Leads     *LeadHandler
	Activity  *ActivityHandler
}

func RegisterRoutes(apiGroup *gin.RouterGroup, h Handlers) {
	apiGroup.GET("/state", h.Dashboard.GetState)
	apiGroup.PUT("/view", h.Dashboard.SetView)
	apiGroup.GET("/views", h.Dashboard.GetViews)

	// Campaign Routes
	apiGroup.GET("/campaigns", h.Campaigns.GetCampaigns)
	apiGroup.POST("/campaigns", h.Campaigns.CreateCampaign)
	apiGroup.PUT("/campaigns/active", h.Campaigns.SetActive)
	apiGroup.PATCH("/campaigns/active", h.Campaigns.UpdateActive)
	apiGroup.GET("/campaigns/:id", h.Campaigns.GetCampaign)
	apiGroup.PATCH("/campaigns/:id", h.Campaigns.UpdateCampaign)
	apiGroup.GET("/voices", h.Campaigns.GetVoices)

	// Simulation Routes
	apiGroup.POST("/simulation/messages", h.Dashboard.SendMessage)
	apiGroup.GET("/simulation", h.Dashboard.GetSimulation)
	apiGroup.DELETE("/simulation", h.Dashboard.ClearSimulation)
	apiGroup.POST("/speech", h.Dashboard.Speak)

	// Funnel Routes
	apiGroup.GET("/funnels", h.Funnels.GetFunnels)
	apiGroup.POST("/funnels", h.Funnels.GenerateFunnel)
	apiGroup.PUT("/funnels/niche", h.Funnels.SetNiche)
	apiGroup.GET("/funnels/:id/preview", h.Funnels.PreviewFunnel)
	apiGroup.POST("/funnels/:id/convert", h.Funnels.SimulateConversion)

	// Lead Routes
	apiGroup.GET("/leads", h.Leads.GetLeads)
	apiGroup.POST("/leads", h.Leads.CreateLead)
	apiGroup.PUT("/leads/:id/status", h.Leads.UpdateStatus)
	apiGroup.POST("/leads/:id/call", h.Leads.CallLead)

	apiGroup.GET("/analytics", h.Dashboard.GetAnalytics)
	if h.Activity != nil {
		apiGroup.GET("/activity", h.Activity.GetActivity)
	}
}
