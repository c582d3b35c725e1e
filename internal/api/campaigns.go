package api

import (
	"encoding/json"
	"net/http"

	"nexus-engine/internal/dashboard"
	"nexus-engine/internal/idgen"
	"nexus-engine/internal/models"
	"nexus-engine/internal/store"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	Store *store.CampaignStore
	Orch  *dashboard.Orchestrator
}

func NewCampaignHandler(s *store.CampaignStore, orch *dashboard.Orchestrator) *CampaignHandler {
	return &CampaignHandler{Store: s, Orch: orch}
}

func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.List())
}

func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaign, ok := h.Store.Get(c.Param("id"))
	if !ok {
		respondError(c, store.ErrCampaignNotFound)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// CreateCampaignRequest for adding a campaign. Omitted voice settings default
// to Zephyr at normal speed.
type CreateCampaignRequest struct {
	Name              string              `json:"name" binding:"required"`
	Model             string              `json:"model"`
	SystemInstruction string              `json:"systemInstruction"`
	ObjectionHandling string              `json:"objectionHandling"`
	Script            string              `json:"script"`
	Voice             *models.VoiceConfig `json:"voice"`
	Leads             []models.Lead       `json:"leads"`
	Stats             models.Stats        `json:"stats"`
}

func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaign := models.Campaign{
		ID:                idgen.New(),
		Name:              req.Name,
		Model:             req.Model,
		SystemInstruction: req.SystemInstruction,
		ObjectionHandling: req.ObjectionHandling,
		Script:            req.Script,
		Voice:             models.VoiceConfig{VoiceName: models.VoiceZephyr, Speed: 1, Pitch: 1},
		Leads:             []models.Lead{},
		Funnels:           []models.Funnel{},
		Stats:             req.Stats,
	}
	if campaign.Model == "" {
		campaign.Model = store.DefaultModel
	}
	if req.Voice != nil {
		patch := models.CampaignPatch{Voice: req.Voice}
		if err := patch.Normalize(); err != nil {
			respondError(c, err)
			return
		}
		campaign.Voice = *patch.Voice
	}
	for _, l := range req.Leads {
		if l.ID == "" {
			l.ID = idgen.New()
		}
		if l.Status == "" {
			l.Status = models.StatusPending
		}
		if _, err := models.ParseCallStatus(string(l.Status)); err != nil {
			respondError(c, err)
			return
		}
		campaign.Leads = append(campaign.Leads, l)
	}

	if err := h.Store.Create(campaign); err != nil {
		respondError(c, err)
		return
	}
	if h.Store.ActiveID() == "" {
		if err := h.Orch.SetActiveCampaign(campaign.ID); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, campaign)
}

// UpdateCampaignRequest is a CampaignPatch as sent over HTTP. Leads and funnels
// are decoded only so that naming them can be refused.
type UpdateCampaignRequest struct {
	models.CampaignPatch
	Leads   json.RawMessage `json:"leads,omitempty"`
	Funnels json.RawMessage `json:"funnels,omitempty"`
}

func bindPatch(c *gin.Context) (models.CampaignPatch, bool) {
	var req UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.CampaignPatch{}, false
	}
	if req.Leads != nil || req.Funnels != nil {
		respondError(c, errListsNotPatchable)
		return models.CampaignPatch{}, false
	}
	if err := req.CampaignPatch.Normalize(); err != nil {
		respondError(c, err)
		return models.CampaignPatch{}, false
	}
	return req.CampaignPatch, true
}

// UpdateCampaign merges the named fields into the campaign; everything else is kept.
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	campaign, ok := h.Store.Update(c.Param("id"), patch)
	if !ok {
		respondError(c, store.ErrCampaignNotFound)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// UpdateActive edits whichever campaign is active, as the settings panel does.
func (h *CampaignHandler) UpdateActive(c *gin.Context) {
	patch, ok := bindPatch(c)
	if !ok {
		return
	}
	campaign, err := h.Orch.UpdateCampaign(patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

type SetActiveRequest struct {
	ID string `json:"id"`
}

func (h *CampaignHandler) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Orch.SetActiveCampaign(req.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Active campaign updated", "id": req.ID})
}

func (h *CampaignHandler) GetVoices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"voices":    models.PrebuiltVoices,
		"min_speed": models.MinVoiceSpeed,
		"max_speed": models.MaxVoiceSpeed,
	})
}
