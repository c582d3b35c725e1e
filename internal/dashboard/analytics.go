package dashboard

import (
	"strconv"

	dto "nexus-engine/pkg/models"
)

// PerformanceChart is the illustrative weekly overview. It is not derived from
// campaign data.
var PerformanceChart = []dto.ChartBar{
	{Label: "Mon", Height: 40},
	{Label: "Tue", Height: 60},
	{Label: "Wed", Height: 55},
	{Label: "Thu", Height: 80},
	{Label: "Fri", Height: 95, Active: true},
	{Label: "Sat", Height: 70},
	{Label: "Sun", Height: 65},
}

// Analytics renders the active campaign's stats. ok is false when no campaign
// is active, in which case the figures are zero.
func (o *Orchestrator) Analytics() (dto.Analytics, bool) {
	c, ok := o.store.Active()
	out := dto.Analytics{
		CampaignID:   c.ID,
		TotalCalls:   c.Stats.TotalCalls,
		Appointments: c.Stats.Appointments,
		Conversion:   c.Stats.Conversion,
		Chart:        append([]dto.ChartBar(nil), PerformanceChart...),
	}
	out.Cards = []dto.StatCard{
		{Label: "Total Conversions", Value: strconv.Itoa(c.Stats.Appointments), Footer: "+12% from last week"},
		{Label: "AI Magnetism Avg", Value: "94.2%", Footer: "Top 1% of GPT Results"},
		{Label: "Call Volume", Value: strconv.Itoa(c.Stats.TotalCalls), Footer: "2.4 min avg duration"},
	}
	return out, ok
}
