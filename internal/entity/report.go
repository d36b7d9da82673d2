package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Report is an advisory summary written once per successful refresh run.
type Report struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CompanyID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	PeriodDays int            `gorm:"not null" json:"period_days"`
	Channel    ChannelType    `gorm:"type:varchar(32)" json:"channel"`
	Summary    datatypes.JSON `gorm:"type:jsonb" json:"summary"`
	Analysis   string         `gorm:"type:text" json:"analysis"`
	Suggestion string         `gorm:"type:text" json:"suggestion"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Report model.
func (Report) TableName() string {
	return "reports"
}

// ReportSummary is the JSON document stored in Report.Summary.
type ReportSummary struct {
	Total            int       `json:"total"`
	OverallSentiment Sentiment `json:"overall_sentiment"`
	Complaints       int       `json:"complaints"`
	Praises          int       `json:"praises"`
	Neutral          int       `json:"neutral"`
}
