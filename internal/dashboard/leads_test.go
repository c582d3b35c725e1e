package dashboard

import (
	"context"
	"testing"

	"nexus-engine/internal/idgen"
	"nexus-engine/internal/models"
	dto "nexus-engine/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpeningLine(t *testing.T) {
	tests := []struct {
		name   string
		script string
		lead   string
		want   string
	}{
		{"single", "Hi [Lead Name], ...", "Ana", "Hi Ana, ..."},
		{"first only", "[Lead Name] and [Lead Name]", "Bo", "Bo and [Lead Name]"},
		{"absent", "Hello there", "Cy", "Hello there"},
		{"empty script", "", "Di", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OpeningLine(tt.script, tt.lead))
		})
	}
}

func TestCallLead(t *testing.T) {
	f := newFixture(t)
	f.gw.speech = []byte{0x10, 0x00}

	script := "Hi [Lead Name], ..."
	_, err := f.orch.UpdateCampaign(models.CampaignPatch{Script: &script})
	require.NoError(t, err)
	ana := models.Lead{ID: idgen.New(), Name: "Ana", Phone: "555-0000", Status: models.StatusPending, Source: models.LeadSourceManual}
	_, ok := f.store.AppendLead(f.campaign.ID, ana)
	require.True(t, ok)

	require.NoError(t, f.orch.SetView(ViewLeads))
	require.NoError(t, f.orch.SendSimulation(context.Background(), "earlier turn"))
	f.orch.Wait()

	entry, err := f.orch.CallLead(context.Background(), ana.ID)
	require.NoError(t, err)
	f.orch.Wait()

	assert.Equal(t, dto.TranscriptEntry{Role: dto.RoleAI, Text: "Hi Ana, ..."}, entry)
	tr := f.orch.Transcript()
	require.NotEmpty(t, tr)
	assert.Equal(t, entry, tr[0])
	assert.Len(t, tr, 1)
	assert.Equal(t, ViewDashboard, f.orch.CurrentView())

	spoken := f.gw.spokenTexts()
	require.NotEmpty(t, spoken)
	assert.Equal(t, "Hi Ana, ...", spoken[len(spoken)-1])
	assert.Equal(t, 1, f.gw.replyCalls())
}

func TestCallLeadUnknown(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.orch.SetView(ViewLeads))

	_, err := f.orch.CallLead(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrLeadNotFound)
	assert.Equal(t, ViewLeads, f.orch.CurrentView())
	assert.Empty(t, f.gw.spokenTexts())
}

func TestAddLead(t *testing.T) {
	f := newFixture(t)

	lead, err := f.orch.AddLead("  Mia Chen ", "555-7777", "met at expo")
	require.NoError(t, err)
	assert.Equal(t, "Mia Chen", lead.Name)
	assert.Equal(t, models.StatusPending, lead.Status)
	assert.Equal(t, models.LeadSourceManual, lead.Source)

	leads := f.orch.Leads()
	require.Len(t, leads, len(f.campaign.Leads)+1)
	assert.Equal(t, lead, leads[len(leads)-1])

	_, err = f.orch.AddLead(" ", "", "")
	assert.ErrorIs(t, err, ErrEmptyLeadName)
	assert.Len(t, f.orch.Leads(), len(f.campaign.Leads)+1)
}

func TestUpdateLeadStatus(t *testing.T) {
	f := newFixture(t)
	target := f.campaign.Leads[0]

	lead, err := f.orch.UpdateLeadStatus(target.ID, models.StatusAppointmentSet)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAppointmentSet, lead.Status)
	assert.Equal(t, target.Name, lead.Name)

	leads := f.orch.Leads()
	assert.Equal(t, models.StatusAppointmentSet, leads[0].Status)
	assert.Equal(t, f.campaign.Leads[1], leads[1])

	_, err = f.orch.UpdateLeadStatus(target.ID, "Lost")
	assert.ErrorIs(t, err, models.ErrUnknownStatus)

	_, err = f.orch.UpdateLeadStatus("missing", models.StatusRejected)
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestSpeak(t *testing.T) {
	f := newFixture(t)
	f.gw.speech = []byte{0x00, 0x10}

	require.NoError(t, f.orch.Speak(context.Background(), "Testing voice"))
	f.orch.Wait()

	assert.Equal(t, []string{"Testing voice"}, f.gw.spokenTexts())
	assert.Equal(t, 1, f.speaker.count())
	assert.Empty(t, f.orch.Transcript())

	assert.ErrorIs(t, f.orch.Speak(context.Background(), "  "), ErrEmptyMessage)
}

func TestAnalytics(t *testing.T) {
	f := newFixture(t)

	a, ok := f.orch.Analytics()
	require.True(t, ok)
	assert.Equal(t, f.campaign.ID, a.CampaignID)
	assert.Equal(t, 154, a.TotalCalls)
	assert.Equal(t, 28, a.Appointments)
	assert.InDelta(t, 18.2, a.Conversion, 1e-9)
	require.Len(t, a.Cards, 3)
	assert.Equal(t, "28", a.Cards[0].Value)
	assert.Equal(t, "154", a.Cards[2].Value)
	require.Len(t, a.Chart, 7)
	assert.True(t, a.Chart[4].Active)
	assert.Equal(t, "Fri", a.Chart[4].Label)

	require.NoError(t, f.orch.SetActiveCampaign(""))
	a, ok = f.orch.Analytics()
	assert.False(t, ok)
	assert.Zero(t, a.TotalCalls)
}
