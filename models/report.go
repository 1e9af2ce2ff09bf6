package models

import (
	"gorm.io/gorm"
)

type ReportStatus string

const (
	ReportPending     ReportStatus = "pending"
	ReportDismissed   ReportStatus = "dismissed"
	ReportActionTaken ReportStatus = "action_taken"
)

// Report is a user complaint against a review. Duplicate reports by the
// same reporter are allowed. Once resolved a report is immutable apart from
// the admin note written at resolution time.
type Report struct {
	gorm.Model
	ReviewID   uint         `json:"review_id"`
	ReporterID uint         `json:"reporter_id"`
	Reporter   User         `json:"reporter,omitempty" gorm:"foreignKey:ReporterID"`
	Reason     string       `json:"reason" gorm:"not null"`
	Status     ReportStatus `json:"status" gorm:"default:pending"`
	AdminNote  string       `json:"admin_note,omitempty"`
	ResolvedBy uint         `json:"resolved_by,omitempty"`
}
