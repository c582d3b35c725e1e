package dashboard

import (
	"context"
	"errors"
	"strings"
	"time"

	"nexus-engine/internal/idgen"
	"nexus-engine/internal/models"
	"nexus-engine/internal/store"
	dto "nexus-engine/pkg/models"

	"go.uber.org/zap"
)

// LeadNamePlaceholder is replaced by the lead's name when a script is used to open a call.
const LeadNamePlaceholder = "[Lead Name]"

// OpeningLine personalises the first occurrence of the placeholder in script.
func OpeningLine(script, leadName string) string {
	return strings.Replace(script, LeadNamePlaceholder, leadName, 1)
}

// Leads lists the active campaign's call queue.
func (o *Orchestrator) Leads() []models.Lead {
	c, ok := o.store.Active()
	if !ok || c.Leads == nil {
		return []models.Lead{}
	}
	return c.Leads
}

// AddLead appends a manually entered lead to the active campaign.
func (o *Orchestrator) AddLead(name, phone, notes string) (models.Lead, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Lead{}, ErrEmptyLeadName
	}
	campaignID := o.store.ActiveID()
	if campaignID == "" {
		return models.Lead{}, ErrNoActiveCampaign
	}
	lead := models.Lead{
		ID:     idgen.New(),
		Name:   name,
		Phone:  strings.TrimSpace(phone),
		Status: models.StatusPending,
		Notes:  notes,
		Source: models.LeadSourceManual,
	}
	if _, ok := o.store.AppendLead(campaignID, lead); !ok {
		return models.Lead{}, ErrNoActiveCampaign
	}
	return lead, nil
}

func (o *Orchestrator) UpdateLeadStatus(leadID string, status models.CallStatus) (models.Lead, error) {
	if _, err := models.ParseCallStatus(string(status)); err != nil {
		return models.Lead{}, err
	}
	campaignID := o.store.ActiveID()
	if campaignID == "" {
		return models.Lead{}, ErrNoActiveCampaign
	}
	c, err := o.store.UpdateLeadStatus(campaignID, leadID, status)
	switch {
	case errors.Is(err, store.ErrLeadNotFound):
		return models.Lead{}, ErrLeadNotFound
	case errors.Is(err, store.ErrCampaignNotFound):
		return models.Lead{}, ErrNoActiveCampaign
	case err != nil:
		return models.Lead{}, err
	}
	lead, _ := findLead(c.Leads, leadID)
	return lead, nil
}

// CallLead opens a call: it switches to the Dashboard, seeds the transcript
// with the personalised script line and speaks it. No reply is generated.
func (o *Orchestrator) CallLead(ctx context.Context, leadID string) (dto.TranscriptEntry, error) {
	start := time.Now()
	campaign, ok := o.store.Active()
	if !ok {
		return dto.TranscriptEntry{}, ErrNoActiveCampaign
	}
	lead, ok := findLead(campaign.Leads, leadID)
	if !ok {
		return dto.TranscriptEntry{}, ErrLeadNotFound
	}

	entry := dto.TranscriptEntry{Role: dto.RoleAI, Text: OpeningLine(campaign.Script, lead.Name)}
	o.mu.Lock()
	o.view = ViewDashboard
	o.transcript = []dto.TranscriptEntry{entry}
	o.mu.Unlock()
	o.publishState()
	o.record(models.OpCallLead, campaign.ID, lead.Name, start, nil)
	o.log.Info("calling lead", zap.String("campaign_id", campaign.ID), zap.String("lead", lead.Name))

	o.spawn(ctx, func(ctx context.Context) {
		o.speak(ctx, campaign.ID, campaign.Voice.VoiceName, entry.Text)
	})
	return entry, nil
}

// Speak plays text in the active campaign's voice without touching the transcript.
func (o *Orchestrator) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	campaign, ok := o.store.Active()
	if !ok {
		return ErrNoActiveCampaign
	}
	o.spawn(ctx, func(ctx context.Context) {
		o.speak(ctx, campaign.ID, campaign.Voice.VoiceName, text)
	})
	return nil
}

func findLead(leads []models.Lead, id string) (models.Lead, bool) {
	for _, l := range leads {
		if l.ID == id {
			return l, true
		}
	}
	return models.Lead{}, false
}
