package dashboard

import (
	"context"
	"math"
	"strings"
	"time"

	"nexus-engine/internal/gateway"
	"nexus-engine/internal/idgen"
	"nexus-engine/internal/models"

	"go.uber.org/zap"
)

// TargetKeywords are attached to every generated funnel.
var TargetKeywords = []string{"Stake Promo", "VIP Casino Bonus", "High Stakes Rakeback"}

const (
	minMagnetism   = 85
	magnetismRange = 15
)

// MagnetismScore maps r in [0, 1) to the presentation score 85..99.
func MagnetismScore(r float64) int {
	return minMagnetism + int(math.Floor(r*magnetismRange))
}

func (o *Orchestrator) FunnelNiche() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.funnelNiche
}

// SetFunnelNiche stores the funnel factory input.
func (o *Orchestrator) SetFunnelNiche(niche string) {
	o.mu.Lock()
	o.funnelNiche = niche
	o.mu.Unlock()
	o.publishState()
}

// GeneratingFunnel reports whether a funnel request is outstanding.
func (o *Orchestrator) GeneratingFunnel() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.funnelsInFlight > 0
}

// GenerateFunnel requests a landing page for niche (the stored niche when empty)
// and appends it to the campaign active at the time of the call. Only one
// generation runs at a time; a blank niche is rejected without being stored.
func (o *Orchestrator) GenerateFunnel(ctx context.Context, niche string) error {
	campaignID := o.store.ActiveID()

	o.mu.Lock()
	if niche == "" {
		niche = o.funnelNiche
	}
	var err error
	switch {
	case strings.TrimSpace(niche) == "":
		err = ErrEmptyNiche
	case campaignID == "":
		err = ErrNoActiveCampaign
	case o.funnelsInFlight > 0:
		err = ErrFunnelInFlight
	}
	if err != nil {
		o.mu.Unlock()
		return err
	}
	o.funnelNiche = niche
	o.funnelsInFlight++
	o.mu.Unlock()
	o.publishState()

	o.spawn(ctx, func(ctx context.Context) {
		defer func() {
			o.mu.Lock()
			o.funnelsInFlight--
			o.mu.Unlock()
			o.publishState()
		}()
		o.runFunnel(ctx, campaignID, niche)
	})
	return nil
}

func (o *Orchestrator) runFunnel(ctx context.Context, campaignID, niche string) {
	start := time.Now()
	result, err := o.gw.GenerateFunnelHTML(ctx, gateway.FunnelPrompt(niche))
	o.record(models.OpGenerateFunnel, campaignID, niche, start, err)
	if err != nil {
		o.log.Error("funnel generation failed", zap.String("campaign_id", campaignID), zap.Error(err))
		return
	}

	html, _ := gateway.Resolve(gateway.OpFunnel, result)
	funnel := models.Funnel{
		ID:             idgen.New(),
		Name:           niche + " Magnet",
		Niche:          niche,
		HTML:           html,
		MagnetismScore: MagnetismScore(o.rand()),
		TargetKeywords: append([]string(nil), TargetKeywords...),
	}
	if _, ok := o.store.AppendFunnel(campaignID, funnel); !ok {
		o.log.Warn("campaign vanished before funnel landed", zap.String("campaign_id", campaignID))
		return
	}
	o.log.Info("funnel generated",
		zap.String("campaign_id", campaignID),
		zap.String("funnel", funnel.Name),
		zap.Int("magnetism", funnel.MagnetismScore))
	o.notify("info", "Funnel ready: "+funnel.Name)
}

// Funnels lists the active campaign's funnels; none when no campaign is active.
func (o *Orchestrator) Funnels() []models.Funnel {
	c, ok := o.store.Active()
	if !ok {
		return []models.Funnel{}
	}
	if c.Funnels == nil {
		return []models.Funnel{}
	}
	return c.Funnels
}

// Funnel finds a funnel of the active campaign.
func (o *Orchestrator) Funnel(id string) (models.Funnel, error) {
	c, ok := o.store.Active()
	if !ok {
		return models.Funnel{}, ErrNoActiveCampaign
	}
	return findFunnel(c, id)
}

func findFunnel(c models.Campaign, id string) (models.Funnel, error) {
	for _, f := range c.Funnels {
		if f.ID == id {
			return f, nil
		}
	}
	return models.Funnel{}, ErrFunnelNotFound
}

// SimulateConversion books a synthetic lead attributed to the funnel.
func (o *Orchestrator) SimulateConversion(funnelID string) (models.Lead, error) {
	start := time.Now()
	c, ok := o.store.Active()
	if !ok {
		return models.Lead{}, ErrNoActiveCampaign
	}
	funnel, err := findFunnel(c, funnelID)
	if err != nil {
		return models.Lead{}, err
	}

	lead := models.Lead{
		ID:     idgen.New(),
		Name:   "John Doe (Simulated)",
		Phone:  "+1 555-1234",
		Status: models.StatusPending,
		Notes:  "Joined via " + funnel.Name,
		Source: funnel.Name,
	}
	if _, ok := o.store.AppendLead(c.ID, lead); !ok {
		return models.Lead{}, ErrNoActiveCampaign
	}
	o.record(models.OpSimulateLead, c.ID, funnel.Name, start, nil)
	o.notify("info", "Lead simulated! Check Lead Ops.")
	return lead, nil
}
