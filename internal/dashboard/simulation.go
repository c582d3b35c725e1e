package dashboard

import (
	"context"
	"strings"
	"time"

	"nexus-engine/internal/gateway"
	"nexus-engine/internal/models"
	dto "nexus-engine/pkg/models"

	"go.uber.org/zap"
)

// SendSimulation appends the user's turn and asks the campaign persona for a
// reply, which is then appended and spoken. Blank input is rejected before any
// call is made. The call runs in the background; watch State for the result.
func (o *Orchestrator) SendSimulation(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	campaign, ok := o.store.Active()
	if !ok {
		return ErrNoActiveCampaign
	}

	o.mu.Lock()
	o.transcript = append(o.transcript, dto.TranscriptEntry{Role: dto.RoleUser, Text: text})
	o.replyInFlight++
	o.mu.Unlock()
	o.publishState()

	o.spawn(ctx, func(ctx context.Context) {
		defer func() {
			o.mu.Lock()
			o.replyInFlight--
			o.mu.Unlock()
			o.publishState()
		}()
		o.runReply(ctx, campaign, text)
	})
	return nil
}

func (o *Orchestrator) runReply(ctx context.Context, campaign models.Campaign, text string) {
	start := time.Now()
	result, err := o.gw.GenerateReply(ctx, gateway.ReplyRequest{
		Model:             campaign.Model,
		SystemInstruction: campaign.SystemInstruction,
		ObjectionHandling: campaign.ObjectionHandling,
		UserText:          text,
	})
	o.record(models.OpGenerateReply, campaign.ID, campaign.Model, start, err)
	if err != nil {
		o.log.Error("simulation reply failed", zap.String("campaign_id", campaign.ID), zap.Error(err))
		return
	}

	reply, _ := gateway.Resolve(gateway.OpReply, result)
	o.mu.Lock()
	o.transcript = append(o.transcript, dto.TranscriptEntry{Role: dto.RoleAI, Text: reply})
	o.mu.Unlock()
	o.publishState()

	o.speak(ctx, campaign.ID, campaign.Voice.VoiceName, reply)
}

// Transcript returns a copy of the simulation log.
func (o *Orchestrator) Transcript() []dto.TranscriptEntry {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]dto.TranscriptEntry{}, o.transcript...)
}

func (o *Orchestrator) ClearTranscript() {
	o.mu.Lock()
	o.transcript = []dto.TranscriptEntry{}
	o.mu.Unlock()
	o.publishState()
}
