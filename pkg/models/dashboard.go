package models

// Role identifies the speaker of a transcript entry
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// TranscriptEntry is one turn of the simulation terminal
type TranscriptEntry struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// ChartBar is one day of the performance overview chart
type ChartBar struct {
	Label  string `json:"label"`
	Height int    `json:"height"` // percent of chart height
	Active bool   `json:"active"`
}

// StatCard is a headline figure on the analytics panel
type StatCard struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Footer string `json:"footer"`
}

// Analytics is the read-only analytics panel
type Analytics struct {
	CampaignID   string     `json:"campaign_id"`
	TotalCalls   int        `json:"total_calls"`
	Appointments int        `json:"appointments"`
	Conversion   float64    `json:"conversion"`
	Cards        []StatCard `json:"cards"`
	Chart        []ChartBar `json:"chart"`
}

// Notification is a user-facing confirmation message
type Notification struct {
	Level   string `json:"level"` // info, error
	Message string `json:"message"`
}
