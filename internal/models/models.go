package models

import (
	"time"
)

// Activity operations recorded in the activity log
const (
	OpGenerateReply    = "generate_reply"
	OpSynthesizeSpeech = "synthesize_speech"
	OpGenerateFunnel   = "generate_funnel"
	OpSimulateLead     = "simulate_conversion"
	OpCallLead         = "call_lead"
)

// ActivityLog represents one gateway call or dashboard action against a campaign
type ActivityLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CampaignID   string    `gorm:"type:varchar(64);index" json:"campaign_id"`
	Operation    string    `gorm:"type:varchar(50);not null" json:"operation"`
	Detail       string    `gorm:"type:text" json:"detail"`
	Success      bool      `json:"success"`
	ErrorMessage string    `gorm:"type:text" json:"error_message"`
	DurationMS   int64     `json:"duration_ms"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
