package store

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexus-engine/internal/models"
)

func ptr[T any](v T) *T { return &v }

func seeded(t *testing.T) (*CampaignStore, models.Campaign) {
	t.Helper()
	s := NewCampaignStore()
	c := DefaultCampaign()
	ok, err := s.EnsureSeeded([]models.Campaign{c})
	require.NoError(t, err)
	require.True(t, ok)
	return s, c
}

func TestEnsureSeededOnlyWhenEmpty(t *testing.T) {
	s, c := seeded(t)

	ok, err := s.EnsureSeeded([]models.Campaign{DefaultCampaign()})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, c.ID, s.ActiveID())

	active, found := s.Active()
	require.True(t, found)
	assert.Equal(t, "Stake Casino VIP Outreach", active.Name)
	assert.Len(t, active.Leads, 2)
	assert.Empty(t, active.Funnels)
}

func TestUpdateChangesOnlyNamedFields(t *testing.T) {
	s, c := seeded(t)
	before, _ := s.Get(c.ID)

	after, ok := s.Update(c.ID, models.CampaignPatch{
		SystemInstruction: ptr("Be brief."),
		Voice:             &models.VoiceConfig{VoiceName: models.VoiceKore, Speed: 1.5, Pitch: 1.0},
	})
	require.True(t, ok)

	want := before
	want.SystemInstruction = "Be brief."
	want.Voice = models.VoiceConfig{VoiceName: models.VoiceKore, Speed: 1.5, Pitch: 1.0}
	if diff := cmp.Diff(want, after); diff != "" {
		t.Fatalf("unexpected campaign after update (-want +got):\n%s", diff)
	}
	stored, _ := s.Get(c.ID)
	assert.Empty(t, cmp.Diff(want, stored))
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	s, _ := seeded(t)
	before := s.List()

	_, ok := s.Update("missing", models.CampaignPatch{Name: ptr("x")})

	assert.False(t, ok)
	assert.Empty(t, cmp.Diff(before, s.List()))
}

func TestReadsAreCopies(t *testing.T) {
	s, c := seeded(t)

	got, _ := s.Get(c.ID)
	got.Leads[0].Name = "mutated"
	got.Name = "mutated"

	again, _ := s.Get(c.ID)
	assert.Equal(t, "James Miller", again.Leads[0].Name)
	assert.Equal(t, "Stake Casino VIP Outreach", again.Name)
}

func TestAppendLeadKeepsOrder(t *testing.T) {
	s, c := seeded(t)

	updated, ok := s.AppendLead(c.ID, models.Lead{ID: "n1", Name: "New", Status: models.StatusPending})
	require.True(t, ok)
	require.Len(t, updated.Leads, 3)
	assert.Equal(t, c.Leads, updated.Leads[:2])
	assert.Equal(t, "n1", updated.Leads[2].ID)
}

func TestConcurrentAppendsAreNotLost(t *testing.T) {
	s, c := seeded(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AppendFunnel(c.ID, models.Funnel{ID: "f"})
		}()
	}
	wg.Wait()

	got, _ := s.Get(c.ID)
	assert.Len(t, got.Funnels, 50)
}

func TestUpdateLeadStatus(t *testing.T) {
	s, c := seeded(t)

	updated, err := s.UpdateLeadStatus(c.ID, c.Leads[1].ID, models.StatusAppointmentSet)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAppointmentSet, updated.Leads[1].Status)

	_, err = s.UpdateLeadStatus(c.ID, "nope", models.StatusRejected)
	assert.ErrorIs(t, err, ErrLeadNotFound)

	_, err = s.UpdateLeadStatus("nope", c.Leads[0].ID, models.StatusRejected)
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestSetActive(t *testing.T) {
	s, c := seeded(t)

	assert.ErrorIs(t, s.SetActive("missing"), ErrCampaignNotFound)
	assert.Equal(t, c.ID, s.ActiveID())

	require.NoError(t, s.SetActive(""))
	_, ok := s.Active()
	assert.False(t, ok)
}

func TestCreateRejectsDuplicates(t *testing.T) {
	s, c := seeded(t)
	assert.ErrorIs(t, s.Create(c), ErrDuplicateID)
}

func TestOnChangeReceivesCopies(t *testing.T) {
	s, c := seeded(t)

	var got []models.Campaign
	calls := 0
	s.OnChange(func(c models.Campaign) { got = append(got, c) })
	s.OnChange(func(c models.Campaign) {
		calls++
		c.Name = "scribbled"
	})

	s.Update(c.ID, models.CampaignPatch{Name: ptr("Renamed")})
	s.Update("missing", models.CampaignPatch{Name: ptr("ignored")})

	require.Len(t, got, 1)
	assert.Equal(t, "Renamed", got[0].Name)
	assert.Equal(t, 1, calls)
}

func TestParseSeed(t *testing.T) {
	raw := []byte(`
campaigns:
  - name: Poker Night
    model: gemini-3-pro-preview
    script: "Hi [Lead Name]"
    voice:
      voiceName: Puck
      speed: 1.2
    leads:
      - name: Ana
        phone: "555-1111"
`)
	got, err := ParseSeed(raw)
	require.NoError(t, err)
	require.Len(t, got, 1)

	c := got[0]
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, models.VoicePuck, c.Voice.VoiceName)
	assert.Equal(t, 1.0, c.Voice.Pitch)
	require.Len(t, c.Leads, 1)
	assert.Equal(t, models.StatusPending, c.Leads[0].Status)
	assert.Equal(t, models.LeadSourceManual, c.Leads[0].Source)
	assert.NotNil(t, c.Funnels)
}

func TestParseSeedRejectsUnknownVoice(t *testing.T) {
	_, err := ParseSeed([]byte("campaigns:\n  - name: x\n    voice:\n      voiceName: Nobody\n"))
	assert.ErrorIs(t, err, models.ErrUnknownVoice)
}
