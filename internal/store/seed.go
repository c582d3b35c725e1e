package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"nexus-engine/internal/idgen"
	"nexus-engine/internal/models"
)

// DefaultModel drives simulated conversations when a campaign names none.
const DefaultModel = "gemini-3-pro-preview"

// DefaultCampaign is the illustrative campaign seeded into an empty store.
func DefaultCampaign() models.Campaign {
	return models.Campaign{
		ID:                idgen.New(),
		Name:              "Stake Casino VIP Outreach",
		Model:             DefaultModel,
		SystemInstruction: "You are an elite sales concierge for Stake.com. You are calling high-potential leads who just signed up. Your tone is exclusive, knowledgeable, and helpful. You want to get them to make their first deposit using code NEXUS.",
		ObjectionHandling: "If they say 'already have an account', ask if they have a dedicated host. If they mention bonuses, explain our VIP rakeback system.",
		Script:            "Hey [Lead Name], this is your personal account manager from the Stake VIP desk. I saw you just landed on our promo page. Ready to claim that 200% match?",
		Voice:             models.VoiceConfig{VoiceName: models.VoiceZephyr, Speed: 1.05, Pitch: 1.0},
		Leads: []models.Lead{
			{ID: idgen.New(), Name: "James Miller", Phone: "555-0102", Status: models.StatusPending, Source: "Stake High-Roller Funnel"},
			{ID: idgen.New(), Name: "Sarah Sterling", Phone: "555-0394", Status: models.StatusInProgress, Source: models.LeadSourceManual},
		},
		Funnels: []models.Funnel{},
		Stats:   models.Stats{TotalCalls: 154, Appointments: 28, Conversion: 18.2},
	}
}

type seedFile struct {
	Campaigns []models.Campaign `yaml:"campaigns"`
}

// LoadSeedFile reads campaigns from a YAML file. Missing ids are generated and
// every voice and lead status is validated.
func LoadSeedFile(path string) ([]models.Campaign, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(raw)
}

func ParseSeed(raw []byte) ([]models.Campaign, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	out := make([]models.Campaign, 0, len(f.Campaigns))
	for i, c := range f.Campaigns {
		if c.ID == "" {
			c.ID = idgen.New()
		}
		if c.Model == "" {
			c.Model = DefaultModel
		}
		if c.Voice.VoiceName == "" {
			c.Voice.VoiceName = models.VoiceZephyr
		}
		if _, err := models.ParseVoiceName(string(c.Voice.VoiceName)); err != nil {
			return nil, fmt.Errorf("campaign %d: %w", i, err)
		}
		if c.Voice.Speed == 0 {
			c.Voice.Speed = 1.0
		}
		if c.Voice.Pitch == 0 {
			c.Voice.Pitch = 1.0
		}
		for j := range c.Leads {
			if c.Leads[j].ID == "" {
				c.Leads[j].ID = idgen.New()
			}
			if c.Leads[j].Status == "" {
				c.Leads[j].Status = models.StatusPending
			}
			if _, err := models.ParseCallStatus(string(c.Leads[j].Status)); err != nil {
				return nil, fmt.Errorf("campaign %d lead %d: %w", i, j, err)
			}
			if c.Leads[j].Source == "" {
				c.Leads[j].Source = models.LeadSourceManual
			}
		}
		if c.Leads == nil {
			c.Leads = []models.Lead{}
		}
		c.Funnels = []models.Funnel{}
		out = append(out, c)
	}
	return out, nil
}
