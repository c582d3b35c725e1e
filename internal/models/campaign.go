package models

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownVoice  = errors.New("unknown voice name")
	ErrUnknownStatus = errors.New("unknown call status")
	ErrEmptyPatch    = errors.New("patch names no field")
)

// VoiceName is one of the prebuilt synthesis voices.
type VoiceName string

const (
	VoiceKore   VoiceName = "Kore"
	VoicePuck   VoiceName = "Puck"
	VoiceCharon VoiceName = "Charon"
	VoiceFenrir VoiceName = "Fenrir"
	VoiceZephyr VoiceName = "Zephyr"
)

// PrebuiltVoices lists every VoiceName in display order.
var PrebuiltVoices = []VoiceName{VoiceKore, VoicePuck, VoiceCharon, VoiceFenrir, VoiceZephyr}

func ParseVoiceName(s string) (VoiceName, error) {
	switch v := VoiceName(s); v {
	case VoiceKore, VoicePuck, VoiceCharon, VoiceFenrir, VoiceZephyr:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVoice, s)
	}
}

// CallStatus tracks a lead through the outreach lifecycle.
type CallStatus string

const (
	StatusPending        CallStatus = "Pending"
	StatusInProgress     CallStatus = "In Progress"
	StatusAppointmentSet CallStatus = "Appointment Set"
	StatusRejected       CallStatus = "Rejected"
	StatusFollowUp       CallStatus = "Follow Up"
)

func ParseCallStatus(s string) (CallStatus, error) {
	switch st := CallStatus(s); st {
	case StatusPending, StatusInProgress, StatusAppointmentSet, StatusRejected, StatusFollowUp:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// VoiceConfig is the speech profile of a campaign. Pitch is carried but not
// sent to the synthesis call.
type VoiceConfig struct {
	VoiceName VoiceName `json:"voiceName" yaml:"voiceName"`
	Speed     float64   `json:"speed" yaml:"speed"`
	Pitch     float64   `json:"pitch" yaml:"pitch"`
}

const (
	MinVoiceSpeed = 0.5
	MaxVoiceSpeed = 2.0
)

// ClampSpeed keeps a speed inside the range the dashboard slider offers.
func ClampSpeed(speed float64) float64 {
	if speed < MinVoiceSpeed {
		return MinVoiceSpeed
	}
	if speed > MaxVoiceSpeed {
		return MaxVoiceSpeed
	}
	return speed
}

// Lead represents a prospective contact in a campaign's call queue
type Lead struct {
	ID     string     `json:"id" yaml:"id"`
	Name   string     `json:"name" yaml:"name"`
	Phone  string     `json:"phone" yaml:"phone"`
	Status CallStatus `json:"status" yaml:"status"`
	Notes  string     `json:"notes" yaml:"notes"`
	Source string     `json:"source" yaml:"source"` // Funnel name or "Manual"
}

// LeadSourceManual marks leads entered by hand.
const LeadSourceManual = "Manual"

// Funnel represents a generated landing page
type Funnel struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Niche          string   `json:"niche"`
	HTML           string   `json:"html"`
	MagnetismScore int      `json:"magnetismScore"`
	TargetKeywords []string `json:"targetKeywords"`
}

// Stats are display-only counters. Nothing recomputes them from leads or funnels.
type Stats struct {
	TotalCalls   int     `json:"totalCalls" yaml:"totalCalls"`
	Appointments int     `json:"appointments" yaml:"appointments"`
	Conversion   float64 `json:"conversion" yaml:"conversion"`
}

// Campaign bundles the AI persona, the lead queue and the generated funnels
type Campaign struct {
	ID                string      `json:"id" yaml:"id"`
	Name              string      `json:"name" yaml:"name"`
	Model             string      `json:"model" yaml:"model"`
	SystemInstruction string      `json:"systemInstruction" yaml:"systemInstruction"`
	ObjectionHandling string      `json:"objectionHandling" yaml:"objectionHandling"`
	Script            string      `json:"script" yaml:"script"`
	Voice             VoiceConfig `json:"voice" yaml:"voice"`
	Leads             []Lead      `json:"leads" yaml:"leads"`
	Funnels           []Funnel    `json:"funnels" yaml:"-"`
	Stats             Stats       `json:"stats" yaml:"stats"`
}

// Clone returns a deep copy so callers never share slices with the owner.
func (c Campaign) Clone() Campaign {
	out := c
	if c.Leads != nil {
		out.Leads = append([]Lead(nil), c.Leads...)
	}
	if c.Funnels != nil {
		out.Funnels = make([]Funnel, len(c.Funnels))
		for i, f := range c.Funnels {
			out.Funnels[i] = f.Clone()
		}
	}
	return out
}

func (f Funnel) Clone() Funnel {
	out := f
	if f.TargetKeywords != nil {
		out.TargetKeywords = append([]string(nil), f.TargetKeywords...)
	}
	return out
}

// CampaignPatch carries the fields of a partial update. Nil fields are left
// untouched. Leads and funnels are not patchable: they only grow through
// AppendLead and AppendFunnel, and lead status changes through UpdateLeadStatus.
type CampaignPatch struct {
	Name              *string      `json:"name,omitempty"`
	Model             *string      `json:"model,omitempty"`
	SystemInstruction *string      `json:"systemInstruction,omitempty"`
	ObjectionHandling *string      `json:"objectionHandling,omitempty"`
	Script            *string      `json:"script,omitempty"`
	Voice             *VoiceConfig `json:"voice,omitempty"`
	Stats             *Stats       `json:"stats,omitempty"`
}

// Apply merges the non-nil fields of p into c.
func (p CampaignPatch) Apply(c *Campaign) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Model != nil {
		c.Model = *p.Model
	}
	if p.SystemInstruction != nil {
		c.SystemInstruction = *p.SystemInstruction
	}
	if p.ObjectionHandling != nil {
		c.ObjectionHandling = *p.ObjectionHandling
	}
	if p.Script != nil {
		c.Script = *p.Script
	}
	if p.Voice != nil {
		c.Voice = *p.Voice
	}
	if p.Stats != nil {
		c.Stats = *p.Stats
	}
}

// Normalize rejects an empty patch, validates the voice name and clamps the
// speed of a voice change.
func (p *CampaignPatch) Normalize() error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}
	if p.Voice == nil {
		return nil
	}
	if _, err := ParseVoiceName(string(p.Voice.VoiceName)); err != nil {
		return err
	}
	p.Voice.Speed = ClampSpeed(p.Voice.Speed)
	return nil
}

// IsEmpty reports whether the patch names no field at all.
func (p CampaignPatch) IsEmpty() bool {
	return p.Name == nil && p.Model == nil && p.SystemInstruction == nil &&
		p.ObjectionHandling == nil && p.Script == nil && p.Voice == nil &&
		p.Stats == nil
}
