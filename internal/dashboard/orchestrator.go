// Package dashboard drives the four dashboard panels: it owns the transient UI
// state and turns user actions into campaign store updates and gateway calls.
package dashboard

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"nexus-engine/internal/gateway"
	"nexus-engine/internal/models"
	"nexus-engine/internal/store"
	"nexus-engine/internal/ws"
	dto "nexus-engine/pkg/models"

	"go.uber.org/zap"
)

var (
	ErrNoActiveCampaign = errors.New("no active campaign")
	ErrEmptyMessage     = errors.New("message is empty")
	ErrEmptyNiche       = errors.New("funnel niche is empty")
	ErrEmptyLeadName    = errors.New("lead name is empty")
	ErrLeadNotFound     = errors.New("lead not found")
	ErrFunnelNotFound   = errors.New("funnel not found")
	ErrUnknownView      = errors.New("unknown view")
	ErrFunnelInFlight   = errors.New("a funnel is already being generated")
)

// DefaultFunnelNiche pre-fills the funnel factory input.
const DefaultFunnelNiche = "Stake Casino VIP Bonus"

// Notifier pushes events to connected dashboards.
type Notifier interface {
	BroadcastEvent(eventType string, data interface{})
}

// Speaker plays synthesized speech.
type Speaker interface {
	PlayPCM(data []byte) error
}

// ActivityRecorder keeps a log of gateway calls and actions.
type ActivityRecorder interface {
	Record(entry *models.ActivityLog) error
}

// Deps are the collaborators of an Orchestrator. Store and Gateway are required.
type Deps struct {
	Store    *store.CampaignStore
	Gateway  gateway.Gateway
	Speaker  Speaker
	Notifier Notifier
	Activity ActivityRecorder
	Logger   *zap.Logger
	// Rand returns a value in [0, 1). Defaults to math/rand/v2.
	Rand func() float64
}

// State is a snapshot of the transient UI state.
type State struct {
	View             View                  `json:"view"`
	ActiveCampaignID string                `json:"active_campaign_id"`
	ActiveCampaign   *models.Campaign      `json:"active_campaign,omitempty"`
	Transcript       []dto.TranscriptEntry `json:"transcript"`
	Generating       bool                  `json:"generating"`
	GeneratingFunnel bool                  `json:"generating_funnel"`
	FunnelNiche      string                `json:"funnel_niche"`
}

// Orchestrator holds the current view and the simulation transcript. Results
// of asynchronous calls are applied to the campaign that was active when the
// call was issued, not the one active when it resolves.
type Orchestrator struct {
	store    *store.CampaignStore
	gw       gateway.Gateway
	speaker  Speaker
	notifier Notifier
	activity ActivityRecorder
	log      *zap.Logger
	rand     func() float64

	mu              sync.Mutex
	view            View
	transcript      []dto.TranscriptEntry
	replyInFlight   int
	funnelsInFlight int
	funnelNiche     string

	wg sync.WaitGroup
}

func NewOrchestrator(d Deps) *Orchestrator {
	o := &Orchestrator{
		store:       d.Store,
		gw:          d.Gateway,
		speaker:     d.Speaker,
		notifier:    d.Notifier,
		activity:    d.Activity,
		log:         d.Logger,
		rand:        d.Rand,
		view:        ViewDashboard,
		transcript:  []dto.TranscriptEntry{},
		funnelNiche: DefaultFunnelNiche,
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if o.rand == nil {
		o.rand = rand.Float64
	}
	return o
}

// Wait blocks until every asynchronous operation started so far has finished.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// spawn runs fn detached from the caller's cancellation; gateway calls cannot
// be aborted once issued.
func (o *Orchestrator) spawn(ctx context.Context, fn func(ctx context.Context)) {
	ctx = context.WithoutCancel(ctx)
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		fn(ctx)
	}()
}

func (o *Orchestrator) CurrentView() View {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.view
}

func (o *Orchestrator) SetView(v View) error {
	if _, err := ParseView(string(v)); err != nil {
		return err
	}
	o.mu.Lock()
	o.view = v
	o.mu.Unlock()
	o.publishState()
	return nil
}

// State returns a copy of the UI state with the active campaign, if any.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	st := State{
		View:             o.view,
		Transcript:       append([]dto.TranscriptEntry{}, o.transcript...),
		Generating:       o.replyInFlight > 0,
		GeneratingFunnel: o.funnelsInFlight > 0,
		FunnelNiche:      o.funnelNiche,
	}
	o.mu.Unlock()

	if c, ok := o.store.Active(); ok {
		st.ActiveCampaignID = c.ID
		st.ActiveCampaign = &c
	}
	return st
}

// SetActiveCampaign switches the campaign the panels work on.
func (o *Orchestrator) SetActiveCampaign(id string) error {
	if err := o.store.SetActive(id); err != nil {
		return err
	}
	o.publishState()
	return nil
}

// UpdateCampaign merges patch into the active campaign. Without an active
// campaign nothing changes.
func (o *Orchestrator) UpdateCampaign(patch models.CampaignPatch) (models.Campaign, error) {
	if err := patch.Normalize(); err != nil {
		return models.Campaign{}, err
	}
	id := o.store.ActiveID()
	if id == "" {
		return models.Campaign{}, ErrNoActiveCampaign
	}
	c, ok := o.store.Update(id, patch)
	if !ok {
		return models.Campaign{}, ErrNoActiveCampaign
	}
	return c, nil
}

func (o *Orchestrator) publishState() {
	if o.notifier == nil {
		return
	}
	o.notifier.BroadcastEvent(ws.EventState, o.State())
}

func (o *Orchestrator) notify(level, message string) {
	if o.notifier == nil {
		return
	}
	o.notifier.BroadcastEvent(ws.EventNotification, dto.Notification{Level: level, Message: message})
}

// record writes an activity entry. Failures to record are logged only.
func (o *Orchestrator) record(op, campaignID, detail string, start time.Time, err error) {
	if o.activity == nil {
		return
	}
	entry := &models.ActivityLog{
		CampaignID: campaignID,
		Operation:  op,
		Detail:     detail,
		Success:    err == nil,
		DurationMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		entry.ErrorMessage = err.Error()
	}
	if rerr := o.activity.Record(entry); rerr != nil {
		o.log.Warn("activity record failed", zap.String("operation", op), zap.Error(rerr))
	}
}

// speak synthesizes text in the given voice and plays it. Missing audio is ignored.
func (o *Orchestrator) speak(ctx context.Context, campaignID string, voice models.VoiceName, text string) {
	start := time.Now()
	pcm, err := o.gw.SynthesizeSpeech(ctx, text, voice)
	o.record(models.OpSynthesizeSpeech, campaignID, string(voice), start, err)
	if err != nil {
		o.log.Error("TTS Error", zap.String("campaign_id", campaignID), zap.Error(err))
		return
	}
	if len(pcm) == 0 {
		o.log.Debug("speech response carried no audio", zap.String("campaign_id", campaignID))
		return
	}
	if o.speaker == nil {
		return
	}
	if err := o.speaker.PlayPCM(pcm); err != nil {
		o.log.Error("audio playback failed", zap.String("campaign_id", campaignID), zap.Error(err))
	}
}
