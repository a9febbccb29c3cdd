package events

import (
	"time"

	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventReportCreated       EventType = "report_created"
	EventReportStatusChanged EventType = "report_status_changed"
	EventReportBoosted       EventType = "report_boosted"
	EventReportDeleted       EventType = "report_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ReportID  string      `json:"report_id"`
	Actor     string      `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ReportCreatedPayload payload.
type ReportCreatedPayload struct {
	Title      string           `json:"title"`
	IssueType  domain.IssueType `json:"issue_type"`
	AssignedTo string           `json:"assigned_to"`
}

// ReportStatusChangedPayload payload.
type ReportStatusChangedPayload struct {
	NewStatus domain.ReportStatus `json:"new_status"`
	Message   string              `json:"message,omitempty"`
}

// ReportBoostedPayload payload.
type ReportBoostedPayload struct {
	Boosts int64 `json:"boosts"`
}
